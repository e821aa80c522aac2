package bot

const (
	MsgInternalError = "Произошла внутренняя ошибка. Попробуйте позже."
	MsgSlowDown      = "Слишком много сообщений подряд. Подождите пару секунд."
)

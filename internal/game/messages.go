package game

// Prompts shown when a stage is entered.
const (
	MsgIdle                  = "Чтобы внести результат игры, отправьте /newgame"
	MsgChooseLocation        = "Привет! Где проходила игра? Выберите корт."
	MsgFmtChooseDate         = "Корты в «%s» отличные.\nКогда была игра? Начнём с даты (например, 24.10.16 или «вчера»)."
	MsgFmtChooseTime         = "Игра была %s.\nВо сколько она закончилась?"
	MsgFmtChooseFirstPlayer  = "Отлично, игра закончилась %s.\nКто первый игрок?"
	MsgFmtChooseSecondPlayer = "Принято: %s.\nКто был соперником?"
	MsgFmtChooseResult       = "И какой счёт в матче %s - %s?"
	MsgFmtConfirm            = "Проверим:\n%s %s\n%s - %s %s\n\nОтправьте OK, чтобы опубликовать результат, или /back, чтобы исправить."
	MsgHelp                  = "Я помогаю вносить результаты матчей лиги.\n\n" +
		"/newgame - внести новую игру\n" +
		"/back - вернуться на шаг назад\n" +
		"/cancel - отменить ввод"
)

// Replies to user mistakes. The stage does not change.
const (
	MsgUnknownLocation = "Я не знаю такого корта. Если корт новый, попросите администраторов добавить его в список."
	MsgBadDate         = "Не могу распознать дату. Введите её в формате 24.10.16."
	MsgBadTime         = "Не могу распознать время. Введите его в формате 15:45."
	MsgFutureGame      = "Похоже, игра ещё не состоялась! Путешественникам во времени вход воспрещён."
	MsgUnknownPlayer   = "Я не знаю такого игрока. Вот похожие имена:"
	MsgSamePlayer      = "Игрок не может играть сам с собой. Выберите соперника:"
	MsgBadScore        = "Странный счёт! Введите что-то вроде 3:1."
	MsgConfirmPrompt   = "Пожалуйста, подтвердите результат: отправьте OK или /back."
)

// Command replies.
const (
	MsgAlreadyEntering = "Вы уже вносите результат. Продолжите ввод или отправьте /cancel."
	MsgNotMember       = "Извините, но вы не состоите в чате лиги."
	MsgNothingToCancel = "Нечего отменять, вы ещё не начали. Отправьте /newgame."
	MsgCancelled       = "Ввод отменён. Чтобы начать заново, отправьте /newgame."
	MsgCannotGoBack    = "Назад нельзя, мы только начали. Может быть, вы имели в виду /cancel?"
	MsgPrivateOnly     = "Извините, я работаю только в личных сообщениях."
	MsgTextOnly        = "Извините, я понимаю только текст."
)

// Submission outcomes.
const (
	MsgPublished        = "Готово! Мы сообщим всем об игре.\nЧтобы внести ещё одну, отправьте /newgame."
	MsgAlreadyPublished = "Этот результат уже был опубликован.\nЧтобы внести другую игру, отправьте /newgame."
)

// Collaborator failures. The stage does not change so the same input can be retried.
const (
	MsgMembershipUnavailable = "Не удалось проверить членство в лиге. Попробуйте ещё раз."
	MsgDirectoryUnavailable  = "Не удалось получить данные лиги. Попробуйте ещё раз."
	MsgPublishFailed         = "Не удалось опубликовать результат. Отправьте OK, чтобы попробовать ещё раз, или /cancel."
)

// ConfirmLabel is the button that publishes the result.
const ConfirmLabel = "OK"

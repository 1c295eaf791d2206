package telegram

const (
	LogPrefixWebhook = "chat.delivery.telegram.HandleWebhook"
	LogPrefixProcess = "chat.delivery.telegram.processMessage"

	scopePrefix = "telegram_"
)

const (
	CommandStart   = "start"
	CommandHelp    = "help"
	CommandHistory = "historico"
	CommandClear   = "limpar"
)

const (
	MessageWelcome = "👋 Olá! Eu sou o assistente da *EcoMart*.\n\n" +
		"Pergunte sobre nossos produtos ou peça uma cotação de frete, por exemplo:\n" +
		"_Quanto custa o frete para SP com 5 produtos?_\n\n" +
		"Digite /help para ver os comandos."
	MessageHelp = "*Comandos:*\n" +
		"/historico - mostra a conversa atual\n" +
		"/limpar - apaga a conversa atual\n\n" +
		"Para cotar o frete, informe a quantidade de produtos e o estado (UF) de destino."
	MessageEmptyHistory = "A conversa está vazia."
	MessageCleared      = "🧹 Conversa apagada."
	MessageUnsupported  = "Por enquanto só entendo mensagens de texto."
	MessageFailure      = "Desculpe, ocorreu um erro ao processar sua mensagem. Tente novamente."
)

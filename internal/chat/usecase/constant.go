package usecase

// Log prefixes
const (
	LogPrefixAnswer  = "internal.chat.usecase.Answer"
	LogPrefixFreight = "internal.chat.usecase.answerFreight"
	LogPrefixGeneral = "internal.chat.usecase.answerGeneral"
	LogPrefixHistory = "internal.chat.usecase.History"
)

// Operation names carried by chat.FlowError
const (
	OpExtract   = "extract freight query"
	OpCalculate = "calculate freight"
	OpComplete  = "complete chat"
	OpRecord    = "record reply"
)

const (
	PromptFreightExtraction = "Extraia os dados de frete no seguinte formato JSON:\n{ \"quantidadeProdutos\": 3, \"uf\": \"MG\" }"

	FreightReplyTemplate = "O valor do frete para o estado %s com %d produto(s) é R$ %s"

	FreightFallbackMessage = "Não foi possível calcular o frete. Certifique-se de informar a quantidade de produtos e o estado de destino."
	GeneralFallbackMessage = "Desculpe, não consegui responder agora. Tente novamente em instantes."
)

const (
	ExtractionTemperature = 0.0
	ChatTemperature       = 0.7
)

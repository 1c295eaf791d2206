package router

// Intent is the flow a message is dispatched to.
type Intent string

const (
	IntentFreight Intent = "FREIGHT"
	IntentGeneral Intent = "GENERAL"
)

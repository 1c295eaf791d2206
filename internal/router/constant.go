package router

// Log prefixes
const (
	LogPrefixClassify = "internal.router.Classify"
)

// DefaultFreightKeyword is the word that sends a message to the freight flow.
const DefaultFreightKeyword = "frete"

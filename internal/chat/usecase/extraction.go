package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"unicode"

	"ecomart-chatbot/internal/chat"
	"ecomart-chatbot/internal/freight"
	"ecomart-chatbot/internal/model"
	"ecomart-chatbot/pkg/llmprovider"
)

var (
	errEmptyExtraction     = errors.New("model returned no content")
	errMalformedExtraction = errors.New("model returned malformed freight json")
	errMissingField        = errors.New("freight json is missing a field")
)

// extractedQuery uses pointers so an absent field can be told apart from a zero value.
type extractedQuery struct {
	Quantity *int    `json:"quantidadeProdutos"`
	UF       *string `json:"uf"`
}

// extractFreightQuery asks the model, in one round trip, to turn the user's text into a freight query.
func (uc *implUseCase) extractFreightQuery(ctx context.Context, text string) (freight.Query, error) {
	resp, err := uc.llm.GenerateContent(ctx, &llmprovider.Request{
		Model: uc.cfg.ExtractionModel,
		Messages: []llmprovider.Message{
			{Role: string(model.RoleSystem), Content: PromptFreightExtraction},
			{Role: string(model.RoleUser), Content: text},
		},
		Temperature: ExtractionTemperature,
		JSONMode:    uc.cfg.ExtractionJSONMode,
	})
	if err != nil {
		return freight.Query{}, &chat.FlowError{Kind: chat.KindGateway, Op: OpExtract, Err: err}
	}

	q, err := parseFreightQuery(resp.Content.Content)
	if err != nil {
		return freight.Query{}, &chat.FlowError{Kind: chat.KindExtraction, Op: OpExtract, Err: err}
	}
	return q, nil
}

// parseFreightQuery decodes exactly one {"quantidadeProdutos": int, "uf": string} object.
// Unknown fields, missing fields, wrong types and trailing data are all rejected.
func parseFreightQuery(content string) (freight.Query, error) {
	raw := stripCodeFence(content)
	if raw == "" {
		return freight.Query{}, errEmptyExtraction
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.DisallowUnknownFields()

	var eq extractedQuery
	if err := dec.Decode(&eq); err != nil {
		return freight.Query{}, fmt.Errorf("%w: %w", errMalformedExtraction, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return freight.Query{}, fmt.Errorf("%w: trailing data after object", errMalformedExtraction)
	}

	if eq.Quantity == nil {
		return freight.Query{}, fmt.Errorf("%w: quantidadeProdutos", errMissingField)
	}
	if eq.UF == nil {
		return freight.Query{}, fmt.Errorf("%w: uf", errMissingField)
	}

	return freight.Query{
		ProductQuantity: *eq.Quantity,
		RegionCode:      *eq.UF,
	}, nil
}

// stripCodeFence removes a surrounding ``` block and its language tag, in any case.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimLeftFunc(s, unicode.IsLetter)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

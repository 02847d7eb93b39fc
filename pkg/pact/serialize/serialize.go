package serialize

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/pact-foundation/pact-mock-server/pkg/pact"
)

// wireDocument mirrors the on-disk shape from spec.md §6.1. Field order
// matches the declared stable key ordering: consumer, provider,
// interactions, metadata.
type wireDocument struct {
	Consumer     pact.Consumer                `json:"consumer"`
	Provider     pact.Provider                `json:"provider"`
	Interactions []wireInteraction             `json:"interactions"`
	Metadata     map[string]map[string]string `json:"metadata,omitempty"`
}

type wireInteraction struct {
	Description   string       `json:"description"`
	ProviderState string       `json:"providerState,omitempty"`
	Request       wireRequest  `json:"request"`
	Response      wireResponse `json:"response"`
}

type wireRequest struct {
	Method        string            `json:"method"`
	Path          string            `json:"path"`
	Query         *json.RawMessage  `json:"query,omitempty"`
	Headers       map[string]string `json:"headers,omitempty"`
	Body          *json.RawMessage  `json:"body,omitempty"`
	MatchingRules json.RawMessage   `json:"matchingRules,omitempty"`
	Generators    json.RawMessage   `json:"generators,omitempty"`
}

type wireResponse struct {
	Status        int               `json:"status"`
	Headers       map[string]string `json:"headers,omitempty"`
	Body          *json.RawMessage  `json:"body,omitempty"`
	MatchingRules json.RawMessage   `json:"matchingRules,omitempty"`
	Generators    json.RawMessage   `json:"generators,omitempty"`
}

// Parse implements spec.md §4.1's parse contract. Only a fundamentally
// invalid JSON document yields a nil *pact.PactDocument (ParseError.Kind ==
// NotJson); every other failure degrades to a best-effort document, with
// the first ParseError encountered returned alongside it for the caller to
// inspect or ignore.
func Parse(data []byte) (*pact.PactDocument, *ParseError) {
	if !json.Valid(data) {
		return nil, newParseError(NotJson, "root", errors.New("document is not valid JSON"))
	}

	var w wireDocument
	var softErr *ParseError
	if err := json.Unmarshal(data, &w); err != nil {
		// encoding/json fills every field it can before reporting the first
		// type mismatch, so w still holds a best-effort document.
		softErr = newParseError(BadType, "root", err)
	}

	version := detectVersion(w.Metadata)
	if version == pact.Unknown && softErr == nil {
		softErr = newParseError(UnknownSpec, "metadata.pact-specification.version", nil)
	}

	interactions := make([]pact.Interaction, len(w.Interactions))
	for i, wi := range w.Interactions {
		inter, err := decodeInteraction(wi, version, i)
		if err != nil && softErr == nil {
			softErr = err
		}
		interactions[i] = inter
	}

	doc := &pact.PactDocument{
		Consumer:             w.Consumer,
		Provider:             w.Provider,
		Interactions:         interactions,
		Metadata:             w.Metadata,
		SpecificationVersion: version,
	}
	if softErr != nil {
		doc.SpecificationVersion = pact.Unknown
	}
	return doc, softErr
}

// Serialize implements spec.md §4.1's serialize contract: stable key
// ordering (consumer, provider, interactions, metadata), interactions in
// input order, metadata always carrying pact-specification.version.
func Serialize(doc *pact.PactDocument) ([]byte, error) {
	if doc == nil {
		return nil, errors.New("serialize: nil PactDocument")
	}
	version := doc.SpecificationVersion
	if version == pact.Unknown {
		version = pact.V2
	}

	wireInteractions := make([]wireInteraction, len(doc.Interactions))
	for i, inter := range doc.Interactions {
		wi, err := encodeInteraction(inter, version)
		if err != nil {
			return nil, fmt.Errorf("serialize: interactions[%d]: %w", i, err)
		}
		wireInteractions[i] = wi
	}

	w := wireDocument{
		Consumer:     doc.Consumer,
		Provider:     doc.Provider,
		Interactions: wireInteractions,
		Metadata:     mergeMetadata(doc.Metadata, version),
	}
	return json.Marshal(w)
}

func decodeInteraction(wi wireInteraction, version pact.SpecVersion, index int) (pact.Interaction, *ParseError) {
	req, reqErr := decodeRequest(wi.Request, version, index)
	resp, respErr := decodeResponse(wi.Response, version, index)
	err := reqErr
	if err == nil {
		err = respErr
	}
	return pact.Interaction{
		Description:   wi.Description,
		ProviderState: wi.ProviderState,
		Request:       req,
		Response:      resp,
	}, err
}

func encodeInteraction(inter pact.Interaction, version pact.SpecVersion) (wireInteraction, error) {
	req, err := encodeRequest(inter.Request, version)
	if err != nil {
		return wireInteraction{}, err
	}
	resp, err := encodeResponse(inter.Response, version)
	if err != nil {
		return wireInteraction{}, err
	}
	return wireInteraction{
		Description:   inter.Description,
		ProviderState: inter.ProviderState,
		Request:       req,
		Response:      resp,
	}, nil
}

func decodeRequest(wr wireRequest, version pact.SpecVersion, index int) (pact.Request, *ParseError) {
	method := wr.Method
	normalized := false
	if version != pact.V3 {
		upper := strings.ToUpper(method)
		normalized = upper != method
		method = upper
	}

	var query map[string][]string
	if wr.Query != nil {
		q, err := decodeQuery(*wr.Query)
		if err != nil {
			return pact.Request{}, newParseError(BadType, fmt.Sprintf("interactions[%d].request.query", index), err)
		}
		query = q
	}

	ct := contentTypeOf(wr.Headers)
	var bodyRaw json.RawMessage
	present := wr.Body != nil
	if present {
		bodyRaw = *wr.Body
	}
	body, err := decodeBody(bodyRaw, present, ct)
	if err != nil {
		return pact.Request{}, newParseError(BadType, fmt.Sprintf("interactions[%d].request.body", index), err)
	}

	rules, err := decodeRules(wr.MatchingRules, version)
	if err != nil {
		return pact.Request{}, newParseError(BadType, fmt.Sprintf("interactions[%d].request.matchingRules", index), err)
	}

	generators, err := decodeGenerators(wr.Generators)
	if err != nil {
		return pact.Request{}, newParseError(BadType, fmt.Sprintf("interactions[%d].request.generators", index), err)
	}

	return pact.Request{
		Method:              method,
		MethodWasNormalized: normalized,
		Path:                wr.Path,
		Query:               query,
		Headers:             wr.Headers,
		Body:                body,
		MatchingRules:       rules,
		Generators:          generators,
	}, nil
}

func encodeRequest(r pact.Request, version pact.SpecVersion) (wireRequest, error) {
	query, err := encodeQuery(r.Query, version)
	if err != nil {
		return wireRequest{}, err
	}
	bodyRaw, present, err := encodeBody(r.Body)
	if err != nil {
		return wireRequest{}, err
	}

	var rules json.RawMessage
	if version == pact.V3 {
		rules = encodeRulesCategorical(r.MatchingRules)
	} else {
		rules = encodeRulesFlat(r.MatchingRules)
	}

	wr := wireRequest{Method: r.Method, Path: r.Path, Headers: r.Headers, MatchingRules: rules, Generators: encodeGenerators(r.Generators, version)}
	if query != nil {
		wr.Query = &query
	}
	if present {
		wr.Body = &bodyRaw
	}
	return wr, nil
}

func decodeResponse(wr wireResponse, version pact.SpecVersion, index int) (pact.Response, *ParseError) {
	ct := contentTypeOf(wr.Headers)
	var bodyRaw json.RawMessage
	present := wr.Body != nil
	if present {
		bodyRaw = *wr.Body
	}
	body, err := decodeBody(bodyRaw, present, ct)
	if err != nil {
		return pact.Response{}, newParseError(BadType, fmt.Sprintf("interactions[%d].response.body", index), err)
	}

	rules, err := decodeRules(wr.MatchingRules, version)
	if err != nil {
		return pact.Response{}, newParseError(BadType, fmt.Sprintf("interactions[%d].response.matchingRules", index), err)
	}

	generators, err := decodeGenerators(wr.Generators)
	if err != nil {
		return pact.Response{}, newParseError(BadType, fmt.Sprintf("interactions[%d].response.generators", index), err)
	}

	return pact.Response{
		Status:        wr.Status,
		Headers:       wr.Headers,
		Body:          body,
		MatchingRules: rules,
		Generators:    generators,
	}, nil
}

func encodeResponse(r pact.Response, version pact.SpecVersion) (wireResponse, error) {
	bodyRaw, present, err := encodeBody(r.Body)
	if err != nil {
		return wireResponse{}, err
	}

	var rules json.RawMessage
	if version == pact.V3 {
		rules = encodeRulesCategorical(r.MatchingRules)
	} else {
		rules = encodeRulesFlat(r.MatchingRules)
	}

	wr := wireResponse{Status: r.Status, Headers: r.Headers, MatchingRules: rules, Generators: encodeGenerators(r.Generators, version)}
	if present {
		wr.Body = &bodyRaw
	}
	return wr, nil
}

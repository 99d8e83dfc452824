package compiler

import (
	"fmt"
	"reflect"

	"github.com/aretw0/rewind/internal/dto"
	"github.com/aretw0/rewind/pkg/domain"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Parser is responsible for converting raw bytes into a Graph.
type Parser struct {
	strict bool
}

// ParserOption configures a Parser.
type ParserOption func(*Parser)

// WithLenient accepts unknown keys in the document instead of failing.
func WithLenient() ParserOption {
	return func(p *Parser) {
		p.strict = false
	}
}

// NewParser creates a new parser instance. It is strict by default.
func NewParser(opts ...ParserOption) *Parser {
	p := &Parser{strict: true}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Parse decodes a YAML or JSON document (JSON is valid YAML) into a Graph.
func (p *Parser) Parse(data []byte) (*domain.Graph, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse graph: %w", err)
	}
	if raw == nil {
		return nil, fmt.Errorf("failed to parse graph: empty document")
	}
	return p.Decode(raw)
}

// Decode converts an already-unmarshalled document into a Graph.
func (p *Parser) Decode(raw map[string]any) (*domain.Graph, error) {
	var cfg dto.GraphConfig
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		DecodeHook:  transitionHook,
		ErrorUnused: p.strict,
		Result:      &cfg,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to build decoder: %w", err)
	}
	if err := decoder.Decode(raw); err != nil {
		return nil, fmt.Errorf("failed to decode graph: %w", err)
	}
	return cfg.Graph(), nil
}

var transitionType = reflect.TypeOf(dto.TransitionConfig{})

// transitionHook lets a transition be written as a bare target string.
func transitionHook(from reflect.Type, to reflect.Type, data any) (any, error) {
	if to != transitionType || from.Kind() != reflect.String {
		return data, nil
	}
	return dto.TransitionConfig{Target: reflect.ValueOf(data).String()}, nil
}

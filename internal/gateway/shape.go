package gateway

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas/*.json
var schemaFS embed.FS

type shape string

const (
	shapeList shape = "list"
	shapeItem shape = "item"
	shapeAuth shape = "auth"
)

var (
	schemaOnce sync.Once
	schemaSet  map[shape]*gojsonschema.Schema
	schemaErr  error
)

func loadSchemas() (map[shape]*gojsonschema.Schema, error) {
	schemaOnce.Do(func() {
		schemaSet = make(map[shape]*gojsonschema.Schema)
		for _, s := range []shape{shapeList, shapeItem, shapeAuth} {
			raw, err := schemaFS.ReadFile("schemas/" + string(s) + ".json")
			if err != nil {
				schemaErr = fmt.Errorf("read %s schema: %w", s, err)
				return
			}
			compiled, err := gojsonschema.NewSchema(gojsonschema.NewBytesLoader(raw))
			if err != nil {
				schemaErr = fmt.Errorf("compile %s schema: %w", s, err)
				return
			}
			schemaSet[s] = compiled
		}
	})
	return schemaSet, schemaErr
}

// checkShape validates a success body against the envelope schema for s.
func checkShape(op string, s shape, body []byte) error {
	schemas, err := loadSchemas()
	if err != nil {
		return err
	}
	if !json.Valid(body) {
		return &ErrUnexpectedShape{Op: op, Cause: fmt.Errorf("body is not JSON")}
	}

	result, err := schemas[s].Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return &ErrUnexpectedShape{Op: op, Cause: err}
	}
	if result.Valid() {
		return nil
	}

	shapeErr := &ErrUnexpectedShape{Op: op, Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		shapeErr.Errors = append(shapeErr.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return shapeErr
}

// decodeList checks and decodes a collection envelope. A null collection is
// empty.
func decodeList[T any](op string, body []byte) ([]T, error) {
	if err := checkShape(op, shapeList, body); err != nil {
		return nil, err
	}
	var env struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ErrUnexpectedShape{Op: op, Cause: err}
	}
	if env.Data == nil {
		env.Data = []T{}
	}
	return env.Data, nil
}

// decodeItem checks and decodes a single-entity envelope. A null entity is an
// unexpected shape: callers asked for a record and got none.
func decodeItem[T any](op string, s shape, body []byte) (*T, error) {
	if err := checkShape(op, s, body); err != nil {
		return nil, err
	}
	var env struct {
		Data *T `json:"data"`
	}
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, &ErrUnexpectedShape{Op: op, Cause: err}
	}
	if env.Data == nil {
		return nil, &ErrUnexpectedShape{Op: op, Cause: fmt.Errorf("empty data")}
	}
	return env.Data, nil
}

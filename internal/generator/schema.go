// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package generator

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"sitesmith/internal/models"
)

//go:embed content.schema.json
var contentSchemaJSON []byte

// Issue is one place where normalized content departs from the expected
// shape.
type Issue struct {
	Location string
	Message  string
}

func (i Issue) String() string {
	loc := strings.TrimSpace(i.Location)
	if loc == "" {
		loc = "#"
	} else if !strings.HasPrefix(loc, "#") {
		loc = "#" + loc
	}
	return loc + ": " + i.Message
}

var contentSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	compiler := jsonschema.NewCompiler()
	compiler.Draft = jsonschema.Draft2020
	if err := compiler.AddResource("content.schema.json", bytes.NewReader(contentSchemaJSON)); err != nil {
		return nil, err
	}
	return compiler.Compile("content.schema.json")
})

// CheckContent validates c against the content schema. A nil result means
// the content has the shape the site prompt expects.
func CheckContent(c models.Content) ([]Issue, error) {
	schema, err := contentSchema()
	if err != nil {
		return nil, fmt.Errorf("content schema compile: %w", err)
	}

	raw, err := json.Marshal(c)
	if err != nil {
		return nil, fmt.Errorf("content schema marshal: %w", err)
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var doc any
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("content schema decode: %w", err)
	}

	err = schema.Validate(doc)
	if err == nil {
		return nil, nil
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return nil, fmt.Errorf("content schema validate: %w", err)
	}
	return collectIssues(ve), nil
}

// collectIssues flattens the cause tree to its leaves.
func collectIssues(ve *jsonschema.ValidationError) []Issue {
	var issues []Issue
	var walk func(*jsonschema.ValidationError)
	walk = func(node *jsonschema.ValidationError) {
		if len(node.Causes) == 0 {
			issues = append(issues, Issue{
				Location: node.InstanceLocation,
				Message:  strings.TrimSpace(node.Message),
			})
			return
		}
		for _, cause := range node.Causes {
			walk(cause)
		}
	}
	walk(ve)
	return issues
}

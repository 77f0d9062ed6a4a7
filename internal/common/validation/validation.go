// Package validation checks request payload shape against JSON schemas before
// anything reaches the services. The services never re-validate field shape.
package validation

import (
	"github.com/xeipuuv/gojsonschema"
)

var candidateSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"id":         map[string]interface{}{"type": "string"},
		"name":       map[string]interface{}{"type": "string", "minLength": 3},
		"positionId": map[string]interface{}{"type": "string", "minLength": 1},
		"phoneNumber": map[string]interface{}{
			"type":    "string",
			"pattern": "^[+]?[0-9]{10,13}$",
		},
		"cvLink": map[string]interface{}{
			"type":    "string",
			"pattern": "^((https?://)([0-9a-z.-]+)\\.([a-z.]{2,6})[/\\w .-]*/?)?$",
		},
		"email": map[string]interface{}{
			"type":    "string",
			"pattern": "^.+@.+\\..+$",
		},
		"interviewDate": map[string]interface{}{
			"type":    "string",
			"pattern": "^[0-9]{4}-[0-9]{2}-[0-9]{2}$",
		},
		"documentId": map[string]interface{}{"type": "string"},
		"assignedTo": map[string]interface{}{"type": "string"},
		"hired":      map[string]interface{}{"type": "boolean"},
	},
	"required": []interface{}{"name", "positionId", "phoneNumber", "email"},
}

var positionCreateSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"id":   map[string]interface{}{"type": "string"},
		"name": map[string]interface{}{"type": "string", "minLength": 1},
		"status": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"OPEN", "CLOSED"},
		},
		"subStatus": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"CANCELLED", "FILLED"},
		},
		"hiredCandidateId": map[string]interface{}{"type": "string"},
	},
	"required": []interface{}{"name"},
}

var positionUpdateSchema = map[string]interface{}{
	"type": "object",
	"properties": map[string]interface{}{
		"id":   map[string]interface{}{"type": "string"},
		"name": map[string]interface{}{"type": "string", "minLength": 1},
		"status": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"OPEN", "CLOSED"},
		},
		"subStatus": map[string]interface{}{
			"type": "string",
			"enum": []interface{}{"CANCELLED", "FILLED"},
		},
		"hiredCandidateId": map[string]interface{}{"type": "string"},
	},
	"required": []interface{}{"name", "status"},
}

// fieldMessages carries the messages surfaced to clients, keyed by field.
var fieldMessages = map[string]string{
	"name":          "Please provide a valid name",
	"positionId":    "Please provide a valid position id",
	"phoneNumber":   "Please provide a valid phone number",
	"cvLink":        "Please provide a valid link",
	"email":         "Please provide a valid email address",
	"interviewDate": "Please provide a valid interview date",
	"status":        "Please provide a valid status",
	"subStatus":     "Please provide a valid sub-status",
}

// ValidateCandidate validates a candidate payload; on failure the returned
// message belongs to the first failing field.
func ValidateCandidate(payload map[string]interface{}) (string, bool) {
	return validate(candidateSchema, payload)
}

// ValidatePositionCreate validates a position creation payload.
func ValidatePositionCreate(payload map[string]interface{}) (string, bool) {
	return validate(positionCreateSchema, payload)
}

// ValidatePositionUpdate validates a position update payload.
func ValidatePositionUpdate(payload map[string]interface{}) (string, bool) {
	return validate(positionUpdateSchema, payload)
}

func validate(schema, payload map[string]interface{}) (string, bool) {
	schemaLoader := gojsonschema.NewGoLoader(schema)
	documentLoader := gojsonschema.NewGoLoader(payload)

	result, err := gojsonschema.Validate(schemaLoader, documentLoader)
	if err != nil {
		return "invalid request body", false
	}
	if result.Valid() {
		return "", true
	}

	desc := result.Errors()[0]
	if msg, ok := fieldMessages[desc.Field()]; ok {
		return msg, false
	}
	// Required-property misses report against the parent object.
	if prop, ok := desc.Details()["property"].(string); ok {
		if msg, known := fieldMessages[prop]; known {
			return msg, false
		}
	}
	return desc.String(), false
}

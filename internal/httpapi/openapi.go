package httpapi

import (
	"net/http"
	"strconv"

	"github.com/getkin/kin-openapi/openapi3"
)

// Spec describes the REST surface as an OpenAPI 3 document.
func Spec(version string) *openapi3.T {
	if version == "" {
		version = "v0.0.0"
	}
	doc := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       "papercode",
			Description: "Generate project documentation from a catalog of project types, stacks and libraries.",
			Version:     version,
		},
		Paths: openapi3.NewPaths(),
	}

	stringList := openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema())
	stringListMap := openapi3.NewObjectSchema().WithAdditionalProperties(stringList)
	errSchema := errorSchema()

	doc.AddOperation("/healthz", http.MethodGet, &openapi3.Operation{
		OperationID: "health",
		Summary:     "Liveness probe",
		Tags:        []string{"system"},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("Service is up", objectWith(map[string]*openapi3.Schema{
				"status": openapi3.NewStringSchema(),
			})),
		}),
	})

	doc.AddOperation("/api/config/project-types", http.MethodGet, &openapi3.Operation{
		OperationID: "listProjectTypes",
		Summary:     "List project types in declaration order",
		Tags:        []string{"catalog"},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("Project types", objectWith(map[string]*openapi3.Schema{
				"project_types": stringList,
			})),
		}),
	})

	doc.AddOperation("/api/config/tech-stacks/{project_type}", http.MethodGet, &openapi3.Operation{
		OperationID: "listTechStacks",
		Summary:     "List tech stacks for a project type; unknown types yield an empty list",
		Tags:        []string{"catalog"},
		Parameters:  openapi3.Parameters{pathParam("project_type")},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("Tech stacks", objectWith(map[string]*openapi3.Schema{
				"tech_stacks": stringList,
			})),
		}),
	})

	doc.AddOperation("/api/config/libraries/{tech_stack}", http.MethodGet, &openapi3.Operation{
		OperationID: "listLibraries",
		Summary:     "List libraries for a tech stack; unknown stacks yield an empty list",
		Tags:        []string{"catalog"},
		Parameters:  openapi3.Parameters{pathParam("tech_stack")},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("Libraries", objectWith(map[string]*openapi3.Schema{
				"libraries": stringList,
			})),
		}),
	})

	doc.AddOperation("/api/config/full", http.MethodGet, &openapi3.Operation{
		OperationID: "getCatalog",
		Summary:     "Full catalog structure",
		Tags:        []string{"catalog"},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("Catalog", objectWith(map[string]*openapi3.Schema{
				"project_types": stringList,
				"tech_stacks":   stringListMap,
				"libraries":     stringListMap,
			})),
		}),
	})

	doc.AddOperation("/api/generate", http.MethodPost, &openapi3.Operation{
		OperationID: "generate",
		Summary:     "Validate a project configuration and render its documentation",
		Tags:        []string{"generation"},
		RequestBody: &openapi3.RequestBodyRef{
			Value: openapi3.NewRequestBody().
				WithRequired(true).
				WithJSONSchema(objectWith(map[string]*openapi3.Schema{
					"config": projectConfigSchema(),
				}).WithRequired([]string{"config"})),
		},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("Documentation generated", objectWith(map[string]*openapi3.Schema{
				"success":         openapi3.NewBoolSchema(),
				"message":         openapi3.NewStringSchema(),
				"project_id":      openapi3.NewStringSchema(),
				"output_path":     openapi3.NewStringSchema(),
				"files_generated": stringList,
			})),
			http.StatusBadRequest:          jsonResponse("Validation failed or AI unavailable", errSchema),
			http.StatusBadGateway:          jsonResponse("AI provider request failed", errSchema),
			http.StatusInternalServerError: jsonResponse("Template or filesystem failure", errSchema),
		}),
	})

	doc.AddOperation("/api/download/{project_id}", http.MethodGet, &openapi3.Operation{
		OperationID: "download",
		Summary:     "Download a generated project as a ZIP archive",
		Tags:        []string{"generation"},
		Parameters:  openapi3.Parameters{pathParam("project_id")},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: {Value: openapi3.NewResponse().
				WithDescription("ZIP archive of the output root").
				WithContent(openapi3.NewContentWithSchema(openapi3.NewStringSchema(), []string{"application/zip"}))},
			http.StatusBadRequest: jsonResponse("Project id is not a UUID", errSchema),
			http.StatusNotFound:   jsonResponse("Project not found", errSchema),
		}),
	})

	doc.AddOperation("/api/ai/status", http.MethodGet, &openapi3.Operation{
		OperationID: "aiStatus",
		Summary:     "Report whether AI descriptions are configured",
		Tags:        []string{"generation"},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("AI availability", objectWith(map[string]*openapi3.Schema{
				"available": openapi3.NewBoolSchema(),
			})),
		}),
	})

	doc.AddOperation("/api/cleanup", http.MethodDelete, &openapi3.Operation{
		OperationID: "cleanup",
		Summary:     "Remove generated projects from the work directory",
		Tags:        []string{"generation"},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("Cleanup finished", objectWith(map[string]*openapi3.Schema{
				"message": openapi3.NewStringSchema(),
				"removed": openapi3.NewIntegerSchema(),
			})),
			http.StatusInternalServerError: jsonResponse("Cleanup failed", errSchema),
		}),
	})

	doc.AddOperation("/api/openapi.json", http.MethodGet, &openapi3.Operation{
		OperationID: "openapi",
		Summary:     "This document",
		Tags:        []string{"system"},
		Responses: responses(map[int]*openapi3.ResponseRef{
			http.StatusOK: jsonResponse("OpenAPI document", openapi3.NewObjectSchema()),
		}),
	})

	return doc
}

func projectConfigSchema() *openapi3.Schema {
	return objectWith(map[string]*openapi3.Schema{
		"project_name": openapi3.NewStringSchema(),
		"description":  openapi3.NewStringSchema(),
		"project_type": openapi3.NewStringSchema(),
		"tech_stack":   openapi3.NewStringSchema(),
		"libraries":    openapi3.NewArraySchema().WithItems(openapi3.NewStringSchema()),
		"ai_generate":  openapi3.NewBoolSchema(),
		"ai_hint":      openapi3.NewStringSchema(),
		"template_dir": openapi3.NewStringSchema(),
		"update_mode":  openapi3.NewBoolSchema(),
	}).WithRequired([]string{"project_name", "project_type", "tech_stack"})
}

func errorSchema() *openapi3.Schema {
	return objectWith(map[string]*openapi3.Schema{
		"success":  openapi3.NewBoolSchema(),
		"message":  openapi3.NewStringSchema(),
		"code":     openapi3.NewStringSchema(),
		"field":    openapi3.NewStringSchema(),
		"value":    openapi3.NewStringSchema(),
		"path":     openapi3.NewStringSchema(),
		"detail":   openapi3.NewStringSchema(),
		"trace_id": openapi3.NewStringSchema(),
	})
}

func objectWith(props map[string]*openapi3.Schema) *openapi3.Schema {
	return openapi3.NewObjectSchema().WithProperties(props)
}

func pathParam(name string) *openapi3.ParameterRef {
	return &openapi3.ParameterRef{
		Value: openapi3.NewPathParameter(name).WithSchema(openapi3.NewStringSchema()),
	}
}

func jsonResponse(description string, schema *openapi3.Schema) *openapi3.ResponseRef {
	return &openapi3.ResponseRef{
		Value: openapi3.NewResponse().WithDescription(description).WithJSONSchema(schema),
	}
}

func responses(byStatus map[int]*openapi3.ResponseRef) *openapi3.Responses {
	out := openapi3.NewResponsesWithCapacity(len(byStatus))
	for status, ref := range byStatus {
		out.Set(strconv.Itoa(status), ref)
	}
	return out
}

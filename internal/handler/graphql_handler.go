package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/graphql-go/graphql"
	"github.com/rs/zerolog"

	"github.com/classboard/classboard-api/internal/utils"
)

// GraphQLRequest is the standard GraphQL-over-HTTP request body.
type GraphQLRequest struct {
	Query         string                 `json:"query"`
	OperationName string                 `json:"operationName"`
	Variables     map[string]interface{} `json:"variables"`
}

// GraphQLHandler executes queries and mutations against the schema.
type GraphQLHandler struct {
	schema graphql.Schema
	logger zerolog.Logger
}

// NewGraphQLHandler constructs the handler.
func NewGraphQLHandler(schema graphql.Schema, logger zerolog.Logger) *GraphQLHandler {
	return &GraphQLHandler{
		schema: schema,
		logger: logger.With().Str("component", "graphql_handler").Logger(),
	}
}

// Register attaches the GraphQL endpoint to the router group.
func (h *GraphQLHandler) Register(router fiber.Router) {
	router.Post("", h.execute)
}

func (h *GraphQLHandler) execute(c *fiber.Ctx) error {
	var request GraphQLRequest
	if err := c.BodyParser(&request); err != nil {
		return utils.SendError(c, fiber.StatusBadRequest, "invalid request body")
	}
	if request.Query == "" {
		return utils.SendError(c, fiber.StatusBadRequest, "query is required")
	}

	if request.OperationName != "" {
		c.Locals("graphql_operation", request.OperationName)
	}

	result := graphql.Do(graphql.Params{
		Schema:         h.schema,
		RequestString:  request.Query,
		VariableValues: request.Variables,
		OperationName:  request.OperationName,
		Context:        c.UserContext(),
	})

	if result.HasErrors() {
		h.logger.Warn().Int("errors", len(result.Errors)).Str("operation", request.OperationName).Msg("graphql request returned errors")
	}

	// Resolver failures ride inside the GraphQL envelope with a 200,
	// matching the GraphQL-over-HTTP convention.
	return c.Status(fiber.StatusOK).JSON(result)
}

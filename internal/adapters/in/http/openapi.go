package http

import (
	"context"
	_ "embed"
	"errors"
	"net/http"

	"ordering/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

//go:embed openapi.yaml
var openAPIDocument []byte

// OpenAPIDocument returns the raw API description served at /api/v1/openapi.yaml.
func OpenAPIDocument() []byte {
	return openAPIDocument
}

// LoadOpenAPI parses and validates the embedded API description.
func LoadOpenAPI(ctx context.Context) (*openapi3.T, error) {
	doc, err := openapi3.NewLoader().LoadFromData(openAPIDocument)
	if err != nil {
		return nil, err
	}
	if err = doc.Validate(ctx); err != nil {
		return nil, err
	}
	return doc, nil
}

// RequestValidator rejects requests that do not match the API description.
// Requests to paths the description does not know are left to the router.
func RequestValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := legacy.NewRouter(doc)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, findErr := router.FindRoute(req)
			if findErr != nil {
				var routeErr *routers.RouteError
				if errors.As(findErr, &routeErr) {
					return next(c)
				}
				return findErr
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if validateErr := openapi3filter.ValidateRequest(req.Context(), input); validateErr != nil {
				return requestValidationError(validateErr)
			}
			return next(c)
		}
	}, nil
}

// requestValidationError keeps the status split of the handlers: undecodable
// input and bad path parameters are 400, everything else is 422.
func requestValidationError(err error) error {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	var parseErr *openapi3filter.ParseError
	if errors.As(err, &parseErr) {
		return echo.NewHTTPError(http.StatusBadRequest, "malformed request: "+reqErr.Error())
	}
	if reqErr.Parameter != nil && reqErr.Parameter.In == openapi3.ParameterInPath {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid path parameter: "+reqErr.Parameter.Name)
	}

	field := "request"
	if reqErr.Parameter != nil {
		field = reqErr.Parameter.Name
	}
	return errs.NewValueIsInvalidErrorWithCause(field, reqErr)
}

package http

import (
	"fmt"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"

	"manufacturing/internal/core/domain/model/kernel"
	"manufacturing/internal/pkg/errs"
)

// localTimeLayout is the scheduler's date-time format, accepted next to RFC 3339.
const localTimeLayout = "2006-01-02T15:04:05"

func pathString(c echo.Context, name string) (string, error) {
	var value string
	if err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	raw, err := pathString(c, name)
	if err != nil {
		return kernel.UUID{}, err
	}
	return parseUUID(name, raw)
}

func pathInt64(c echo.Context, name string) (int64, error) {
	var value int64
	if err := runtime.BindStyledParameterWithOptions("simple", name, c.Param(name), &value, runtime.BindStyledParameterOptions{
		ParamLocation: runtime.ParamLocationPath,
		Explode:       false,
		Required:      true,
	}); err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return value, nil
}

func queryString(c echo.Context, name string) (string, error) {
	var value *string
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return "", errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value == nil {
		return "", nil
	}
	return *value, nil
}

func queryWorkstation(c echo.Context, name string) (*kernel.WorkstationID, error) {
	var value *int64
	if err := runtime.BindQueryParameter("form", true, false, name, c.QueryParams(), &value); err != nil {
		return nil, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	if value == nil {
		return nil, nil
	}
	ws := kernel.WorkstationID(*value)
	return &ws, nil
}

func queryUUID(c echo.Context, name string) (*kernel.UUID, error) {
	raw, err := queryString(c, name)
	if err != nil || raw == "" {
		return nil, err
	}
	id, err := parseUUID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

func parseUUID(name, raw string) (kernel.UUID, error) {
	id, err := kernel.UUIDFromString(raw)
	if err != nil {
		return kernel.UUID{}, errs.NewValueIsInvalidErrorWithCause(name, err)
	}
	return id, nil
}

func parseOptionalUUID(name, raw string) (*kernel.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	id, err := parseUUID(name, raw)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// parseTime reads RFC 3339 or the local layout; an empty value is the zero time.
func parseTime(name, raw string) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return time.Time{}, nil
	}
	for _, layout := range []string{time.RFC3339Nano, localTimeLayout} {
		if t, err := time.Parse(layout, raw); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, errs.NewValueIsInvalidErrorWithCause(name, fmt.Errorf("unrecognised time %q", raw))
}

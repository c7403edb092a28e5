package routekit

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
)

// MountMeta is the parsed mount annotation of a controller: the base path
// the controller's sub-router is mounted at, plus middleware names shared by
// every route of the controller.
type MountMeta struct {
	BasePath   string
	Middleware []string
}

// RouteMeta is the parsed route annotation of a single route field. Name is
// the declaring field's name and identifies the controller method to bind.
type RouteMeta struct {
	Method     string
	Path       string
	Middleware []string
	Name       string
}

var allowedMethods = map[string]struct{}{
	http.MethodGet:     {},
	http.MethodPost:    {},
	http.MethodPut:     {},
	http.MethodDelete:  {},
	http.MethodPatch:   {},
	http.MethodHead:    {},
	http.MethodOptions: {},
}

var (
	controllerType = reflect.TypeOf(Controller{})
	routeType      = reflect.TypeOf(Route{})
)

// MountMetaOf retrieves the mount metadata attached to a controller. The
// controller must be a struct or pointer to struct embedding the Controller
// marker with a mount tag; anything else fails with ErrMissingMetadata.
func MountMetaOf(target any) (MountMeta, error) {
	st, err := structTypeOf(target)
	if err != nil {
		return MountMeta{}, err
	}

	field, ok := findMarker(st)
	if !ok {
		return MountMeta{}, errors.Join(ErrMissingMetadata, fmt.Errorf("%s does not embed routekit.Controller", st))
	}

	base, ok := field.Tag.Lookup("mount")
	if !ok {
		return MountMeta{}, errors.Join(ErrMissingMetadata, fmt.Errorf("%s: embedded routekit.Controller has no mount tag", st))
	}
	if !strings.HasPrefix(base, "/") {
		return MountMeta{}, errors.Join(ErrMissingMetadata, fmt.Errorf("%s: mount path %q must start with /", st, base))
	}

	return MountMeta{
		BasePath:   base,
		Middleware: splitNames(field.Tag.Get("use")),
	}, nil
}

// RoutesOf retrieves the route metadata declared on a controller, in field
// declaration order. Embedded structs are walked depth-first, so a routes
// descriptor struct contributes its fields at the position it is embedded.
// Fields that are not of type Route are plain data and skipped; a Route
// field with a missing or malformed tag fails with ErrInvalidRoute.
func RoutesOf(target any) ([]RouteMeta, error) {
	st, err := structTypeOf(target)
	if err != nil {
		return nil, err
	}
	return collectRoutes(st)
}

func collectRoutes(st reflect.Type) ([]RouteMeta, error) {
	var routes []RouteMeta
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)

		if field.Type == routeType {
			meta, err := parseRouteTag(st, field)
			if err != nil {
				return nil, err
			}
			routes = append(routes, meta)
			continue
		}

		if field.Anonymous && field.Type.Kind() == reflect.Struct && field.Type != controllerType {
			nested, err := collectRoutes(field.Type)
			if err != nil {
				return nil, err
			}
			routes = append(routes, nested...)
		}
	}
	return routes, nil
}

func parseRouteTag(st reflect.Type, field reflect.StructField) (RouteMeta, error) {
	if !field.IsExported() {
		return RouteMeta{}, errors.Join(ErrInvalidRoute, fmt.Errorf("%s.%s: route field must be exported to name a handler method", st, field.Name))
	}

	tag, ok := field.Tag.Lookup("route")
	if !ok {
		return RouteMeta{}, errors.Join(ErrInvalidRoute, fmt.Errorf("%s.%s: route field has no route tag", st, field.Name))
	}

	parts := strings.Fields(tag)
	if len(parts) != 2 {
		return RouteMeta{}, errors.Join(ErrInvalidRoute, fmt.Errorf("%s.%s: route tag %q must be \"VERB /path\"", st, field.Name, tag))
	}

	method, path := parts[0], parts[1]
	if _, ok := allowedMethods[method]; !ok {
		return RouteMeta{}, errors.Join(ErrInvalidRoute, fmt.Errorf("%s.%s: unknown HTTP verb %q", st, field.Name, method))
	}
	if !strings.HasPrefix(path, "/") {
		return RouteMeta{}, errors.Join(ErrInvalidRoute, fmt.Errorf("%s.%s: path %q must start with /", st, field.Name, path))
	}

	return RouteMeta{
		Method:     method,
		Path:       path,
		Middleware: splitNames(field.Tag.Get("use")),
		Name:       field.Name,
	}, nil
}

// findMarker locates the embedded Controller marker, walking embedded
// structs depth-first so base controller types can carry the annotation.
func findMarker(st reflect.Type) (reflect.StructField, bool) {
	for i := 0; i < st.NumField(); i++ {
		field := st.Field(i)
		if !field.Anonymous {
			continue
		}
		if field.Type == controllerType {
			return field, true
		}
		if field.Type.Kind() == reflect.Struct {
			if nested, ok := findMarker(field.Type); ok {
				return nested, true
			}
		}
	}
	return reflect.StructField{}, false
}

func structTypeOf(target any) (reflect.Type, error) {
	if target == nil {
		return nil, errors.Join(ErrMissingMetadata, errors.New("nil controller"))
	}
	t := reflect.TypeOf(target)
	if t.Kind() == reflect.Pointer {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return nil, errors.Join(ErrMissingMetadata, fmt.Errorf("controller must be a struct, got %s", t.Kind()))
	}
	return t, nil
}

func splitNames(tag string) []string {
	if tag == "" {
		return nil
	}
	parts := strings.Split(tag, ",")
	names := make([]string, 0, len(parts))
	for _, p := range parts {
		if name := strings.TrimSpace(p); name != "" {
			names = append(names, name)
		}
	}
	if len(names) == 0 {
		return nil
	}
	return names
}

package interfaces

import (
	"net/http"
)

// ApplicationContext carries a parsed request body and request-scoped data
// between the transport layer and controllers without binding controllers
// to gin directly.
type ApplicationContext[T interface{}] struct {
	Ctx      interface{}
	Body     *T
	Header   http.Header
	Keys     map[string]any
	DeviceID string
}

func (ctx *ApplicationContext[T]) GetHeader(key string) *string {
	if ctx.Header == nil {
		return nil
	}
	value := ctx.Header.Get(key)
	if value == "" {
		return nil
	}
	return &value
}

func (ctx *ApplicationContext[T]) SetContextData(key string, value any) {
	if ctx.Keys == nil {
		ctx.Keys = map[string]any{}
	}
	ctx.Keys[key] = value
}

func (ctx *ApplicationContext[T]) GetContextData(key string) any {
	if ctx.Keys == nil {
		return nil
	}
	return ctx.Keys[key]
}

func (ctx *ApplicationContext[T]) GetStringContextData(key string) string {
	value, ok := ctx.GetContextData(key).(string)
	if !ok {
		return ""
	}
	return value
}

package vdom

import "strings"

func attr(key string, value any) Attr {
	return Attr{Key: key, Value: value}
}

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute from one or more class names.
func Class(classes ...string) Attr { return attr("class", strings.Join(classes, " ")) }

// Data sets a data-* attribute.
func Data(key, value string) Attr { return attr("data-"+key, value) }

// Href sets the href attribute.
func Href(url string) Attr { return attr("href", url) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Action sets a form's action attribute.
func Action(url string) Attr { return attr("action", url) }

// Method sets a form's method attribute.
func Method(m string) Attr { return attr("method", m) }

// Disabled sets the boolean disabled attribute.
func Disabled(disabled bool) Attr { return attr("disabled", disabled) }

// AriaLive sets aria-live for regions announced on update.
func AriaLive(mode string) Attr { return attr("aria-live", mode) }

// AriaBusy sets aria-busy.
func AriaBusy(busy bool) Attr { return attr("aria-busy", busy) }

// Key sets the reconciliation key.
func Key(key any) Attr { return attr("key", key) }

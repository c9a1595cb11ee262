// Package prompt abstracts the yes/no confirmations and notices the
// storefront pushes at its user.
package prompt

// Confirmer asks the user a yes/no question and reports their answer.
type Confirmer interface {
	Confirm(message string) bool
}

// ConfirmerFunc adapts a function into a Confirmer.
type ConfirmerFunc func(message string) bool

func (f ConfirmerFunc) Confirm(message string) bool { return f(message) }

// Notifier shows the user a one-way notice.
type Notifier interface {
	Notify(message string)
}

// NotifierFunc adapts a function into a Notifier.
type NotifierFunc func(message string)

func (f NotifierFunc) Notify(message string) { f(message) }

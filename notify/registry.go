package notify

import (
	"context"
	"fmt"

	"github.com/oclaw/supportreq/types"
)

type Notifier interface {
	Notify(context.Context, *types.Notification) error
}

// NotifierFunc adapts a plain function to Notifier.
type NotifierFunc func(context.Context, *types.Notification) error

func (f NotifierFunc) Notify(ctx context.Context, n *types.Notification) error {
	return f(ctx, n)
}

type Registry struct {
	notifiers map[types.NotificationType]Notifier
}

func NewRegistry() *Registry {
	return &Registry{
		notifiers: make(map[types.NotificationType]Notifier),
	}
}

func (rg *Registry) RegisterNotifier(nType types.NotificationType, impl Notifier) {
	if _, exists := rg.notifiers[nType]; exists {
		panic(fmt.Errorf("duplicate registration for %s", nType))
	}
	rg.notifiers[nType] = impl
}

func (rg *Registry) GetNotifier(_ context.Context, nType types.NotificationType) (Notifier, error) {
	n, ok := rg.notifiers[nType]
	if !ok {
		return nil, fmt.Errorf("notifier %s is not supported", nType)
	}
	return n, nil
}

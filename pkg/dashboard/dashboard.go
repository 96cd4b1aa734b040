package dashboard

import (
	core "github.com/nabunglabs/nabung-dashboard/components/dashboard"
)

// Service exposes the underlying components/dashboard.Service type.
type Service = core.Service

// Options re-export for convenience.
type Options = core.Options

// Controller re-export for embedding hosts.
type Controller = core.Controller

// NewService proxies to the internal constructor.
func NewService(opts Options) *Service {
	return core.NewService(opts)
}

// NewController proxies to the internal constructor.
func NewController(service *Service, opts ...core.ControllerOption) *Controller {
	return core.NewController(service, opts...)
}

package manager

import (
	"sync"

	"mpeg2-bot/pkg/logger"
)

// Resource is an external dependency opened at startup and closed at shutdown.
type Resource interface {
	MustOpen()
	Close()
}

// ResourcePlugin creates one named resource; plugins register themselves from
// package init functions and are opened by MustInitResources.
type ResourcePlugin interface {
	Name() string
	MustCreateResource() Resource
}

type registry struct {
	mu        sync.Mutex
	plugins   []ResourcePlugin
	resources []Resource
}

var defaultRegistry = &registry{}

// RegisterResourcePlugin 注册资源插件
func RegisterResourcePlugin(p ResourcePlugin) {
	if p == nil {
		return
	}
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	defaultRegistry.plugins = append(defaultRegistry.plugins, p)
}

// MustInitResources opens every registered resource; a failing resource panics
// and aborts startup.
func MustInitResources() {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	for _, p := range defaultRegistry.plugins {
		logger.Infof("opening resource name=%s", p.Name())
		res := p.MustCreateResource()
		res.MustOpen()
		defaultRegistry.resources = append(defaultRegistry.resources, res)
	}
}

// CloseResources closes resources in reverse open order.
func CloseResources() {
	defaultRegistry.mu.Lock()
	defer defaultRegistry.mu.Unlock()
	for i := len(defaultRegistry.resources) - 1; i >= 0; i-- {
		defaultRegistry.resources[i].Close()
	}
	defaultRegistry.resources = nil
}

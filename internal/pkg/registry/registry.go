package registry

import (
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// ModuleContext carries the shared resources a module needs at init time.
type ModuleContext struct {
	DB     *gorm.DB
	Redis  *redis.Client
	Router *gin.Engine
}

// Module is a self-contained domain unit. Modules register themselves from
// an init() in their package; each service binary pulls in only the modules
// it serves via blank imports.
type Module interface {
	Name() string

	// Init wires repositories, services, handlers and routes.
	Init(ctx *ModuleContext) error

	// Priority orders initialization; lower runs first. The order module
	// depends on user and product being wired before it.
	Priority() int
}

// Closer is implemented by modules that own background resources, such as
// workers started during Init, that must be released on shutdown.
type Closer interface {
	Close() error
}

var moduleRegistry = make(map[string]Module)

func Register(module Module) {
	moduleRegistry[module.Name()] = module
}

// InitModules initializes all registered modules in priority order.
func InitModules(ctx *ModuleContext) error {
	modules := make([]Module, 0, len(moduleRegistry))
	for _, m := range moduleRegistry {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Priority() < modules[j].Priority()
	})

	for _, module := range modules {
		if err := module.Init(ctx); err != nil {
			return err
		}
	}
	return nil
}

// CloseModules tears down modules implementing Closer in reverse priority
// order, so dependents stop before the modules they depend on. The first
// error is returned after every module has been given a chance to close.
func CloseModules() error {
	modules := make([]Module, 0, len(moduleRegistry))
	for _, m := range moduleRegistry {
		modules = append(modules, m)
	}
	sort.Slice(modules, func(i, j int) bool {
		return modules[i].Priority() > modules[j].Priority()
	})

	var firstErr error
	for _, module := range modules {
		closer, ok := module.(Closer)
		if !ok {
			continue
		}
		if err := closer.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

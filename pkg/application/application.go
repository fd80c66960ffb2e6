package application

import (
	"fmt"
	"reflect"

	"github.com/gorilla/mux"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/sirupsen/logrus"

	"github.com/commverse/community-sdk/pkg/eventbus"
)

// Controller mounts a set of routes on the shared router.
type Controller interface {
	Key() string
	Register(r *mux.Router)
}

// Module wires a feature's repositories, services and controllers into the
// application at startup.
type Module interface {
	Name() string
	Register(app Application) error
}

// Application is the service container shared by modules and entrypoints.
type Application interface {
	Pool() *pgxpool.Pool
	EventBus() eventbus.EventBus
	Logger() *logrus.Logger
	RegisterControllers(controllers ...Controller)
	Controllers() []Controller
	RegisterServices(services ...interface{})
	Service(service interface{}) interface{}
}

type ApplicationOptions struct {
	Pool     *pgxpool.Pool
	EventBus eventbus.EventBus
	Logger   *logrus.Logger
}

func New(opts *ApplicationOptions) Application {
	return &application{
		pool:     opts.Pool,
		eventBus: opts.EventBus,
		logger:   opts.Logger,
		services: map[reflect.Type]interface{}{},
	}
}

type application struct {
	pool        *pgxpool.Pool
	eventBus    eventbus.EventBus
	logger      *logrus.Logger
	controllers []Controller
	services    map[reflect.Type]interface{}
}

func (a *application) Pool() *pgxpool.Pool {
	return a.pool
}

func (a *application) EventBus() eventbus.EventBus {
	return a.eventBus
}

func (a *application) Logger() *logrus.Logger {
	return a.logger
}

func (a *application) RegisterControllers(controllers ...Controller) {
	a.controllers = append(a.controllers, controllers...)
}

func (a *application) Controllers() []Controller {
	return a.controllers
}

func (a *application) RegisterServices(services ...interface{}) {
	for _, service := range services {
		a.services[reflect.TypeOf(service)] = service
	}
}

// Service returns the registered instance matching the type of the given
// value. Panics when the service was never registered: a missing service is
// a wiring bug, not a runtime condition.
func (a *application) Service(service interface{}) interface{} {
	svc, ok := a.services[reflect.TypeOf(service)]
	if !ok {
		panic(fmt.Sprintf("service %T not found", service))
	}
	return svc
}

package resource

import (
	"errors"
	"fmt"

	"bedadmin/admin-service/internal/app/admin/controller"
	"bedadmin/admin-service/internal/app/admin/entity"
	"bedadmin/admin-service/internal/app/admin/infrastructure"
	"bedadmin/admin-service/internal/app/admin/schema"
)

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrUnknownTab      = errors.New("unknown tab")
	ErrNoForm          = errors.New("resource has no form")
)

// Source - откуда экран списка берет записи
type Source string

const (
	SourceLive   Source = "live"   // backend REST API
	SourceStatic Source = "static" // демо-фикстура /api/products
)

// TabAll - вкладка без фильтра по статусу
const TabAll = "all"

// Tab - вкладка списка с фильтром по коду статуса
type Tab struct {
	Key   string             `json:"key"`
	Label string             `json:"label"`
	Code  *entity.StatusCode `json:"code,omitempty"`
}

// Deps - зависимости, которые экран получает при монтировании
type Deps struct {
	Client   infrastructure.RESTClient
	Options  controller.OptionLoader
	Notifier controller.Notifier
	Auditor  controller.Auditor
}

// Definition - строка таблицы конфигурации: все, чем экраны одной сущности отличаются
type Definition struct {
	Name             string            `json:"name"`
	Label            string            `json:"label"`
	Route            string            `json:"route"`
	Endpoint         string            `json:"endpoint"`
	MutationEndpoint string            `json:"mutation_endpoint"`
	PageSize         int               `json:"page_size"`
	Source           Source            `json:"source"`
	StatusDomain     entity.Domain     `json:"status_domain,omitempty"`
	Tabs             []Tab             `json:"tabs,omitempty"`
	HasForm          bool              `json:"has_form"`
	Options          []string          `json:"options,omitempty"`
	References       map[string]string `json:"references,omitempty"` // поле формы -> ключ справочника

	newList func(def *Definition, tab Tab, deps Deps) controller.ListView
	newForm func(def *Definition, mode controller.Mode, id entity.ID, deps Deps) (controller.FormView, error)
}

// NewList создает экран списка для вкладки; пустая вкладка = TabAll
func (d *Definition) NewList(tabKey string, deps Deps) (controller.ListView, error) {
	tab, err := d.tab(tabKey)
	if err != nil {
		return nil, err
	}
	return d.newList(d, tab, deps), nil
}

// NewForm создает экран формы создания или редактирования
func (d *Definition) NewForm(mode controller.Mode, id entity.ID, deps Deps) (controller.FormView, error) {
	if d.newForm == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoForm, d.Name)
	}
	return d.newForm(d, mode, id, deps)
}

func (d *Definition) tab(key string) (Tab, error) {
	if key == "" || key == TabAll {
		return Tab{Key: TabAll, Label: "All"}, nil
	}
	// Вкладки статусов - ключи из таблицы статусов домена
	if d.StatusDomain != "" {
		if s, ok := d.StatusDomain.Lookup(key); ok {
			code := s.Code
			return Tab{Key: s.Key, Label: s.Label, Code: &code}, nil
		}
	}
	return Tab{}, fmt.Errorf("%w: %s has no tab %q", ErrUnknownTab, d.Name, key)
}

// Registry - таблица всех ресурсов админки
type Registry struct {
	defs  map[string]*Definition
	order []string
}

func NewRegistry() *Registry {
	r := &Registry{defs: make(map[string]*Definition)}
	for _, def := range definitions() {
		r.register(def)
	}
	return r
}

func (r *Registry) register(def *Definition) {
	if def.MutationEndpoint == "" {
		def.MutationEndpoint = def.Endpoint
	}
	if def.Route == "" {
		def.Route = "/" + def.Name
	}
	def.HasForm = def.newForm != nil
	r.defs[def.Name] = def
	r.order = append(r.order, def.Name)
}

func (r *Registry) Get(name string) (*Definition, error) {
	def, ok := r.defs[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownResource, name)
	}
	return def, nil
}

// All возвращает определения в порядке меню
func (r *Registry) All() []Definition {
	out := make([]Definition, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, *r.defs[name])
	}
	return out
}

// ===================== Фабрики экранов =====================

func listOf[T entity.Record]() func(*Definition, Tab, Deps) controller.ListView {
	return func(def *Definition, _ Tab, deps Deps) controller.ListView {
		return controller.NewList(controller.ListConfig[T]{
			Resource:         def.Name,
			Endpoint:         def.Endpoint,
			MutationEndpoint: def.MutationEndpoint,
			PageSize:         def.PageSize,
		}, fetcherFor(def, deps), deps.Client, deps.Notifier, deps.Auditor)
	}
}

func statusListOf[T entity.StatusRecord]() func(*Definition, Tab, Deps) controller.ListView {
	return func(def *Definition, tab Tab, deps Deps) controller.ListView {
		cfg := controller.ListConfig[T]{
			Resource:         def.Name,
			Endpoint:         def.Endpoint,
			MutationEndpoint: def.MutationEndpoint,
			PageSize:         def.PageSize,
		}
		if tab.Code != nil {
			cfg.Filter = controller.StatusIs[T](int(*tab.Code))
		}
		return controller.NewList(cfg, fetcherFor(def, deps), deps.Client, deps.Notifier, deps.Auditor)
	}
}

func formOf[R entity.Record, F schema.Form](defaults func() F, fromRecord func(R) F, multipart bool) func(*Definition, controller.Mode, entity.ID, Deps) (controller.FormView, error) {
	return func(def *Definition, mode controller.Mode, id entity.ID, deps Deps) (controller.FormView, error) {
		form, err := controller.NewForm(controller.FormConfig[R, F]{
			Resource:   def.Name,
			Label:      def.Label,
			Endpoint:   def.MutationEndpoint,
			ListRoute:  def.Route,
			Defaults:   defaults,
			FromRecord: fromRecord,
			Multipart:  multipart,
			Options:    def.Options,
			References: def.References,
		}, mode, id, deps.Client, deps.Options, deps.Notifier, deps.Auditor)
		if err != nil {
			return nil, err
		}
		return form, nil
	}
}

func fetcherFor(def *Definition, deps Deps) controller.Fetcher {
	if def.Source == SourceStatic {
		return StaticSource{}
	}
	return deps.Client
}

func statusTabs(domain entity.Domain) []Tab {
	tabs := []Tab{{Key: TabAll, Label: "All"}}
	for _, s := range entity.Statuses(domain) {
		code := s.Code
		tabs = append(tabs, Tab{Key: s.Key, Label: s.Label, Code: &code})
	}
	return tabs
}

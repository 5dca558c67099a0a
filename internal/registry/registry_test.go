package registry

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/pitstop/pkg/plugin"
)

// testPlugin is a minimal module that records lifecycle calls.
type testPlugin struct {
	info      plugin.PluginInfo
	initErr   error
	validErr  error
	startErr  error
	panicOn   string
	stopDelay time.Duration

	mu    sync.Mutex
	log   *[]string
	stops int
}

func newTestPlugin(name string, deps ...string) *testPlugin {
	return &testPlugin{
		info: plugin.PluginInfo{
			Name:         name,
			Version:      "1.0.0",
			Description:  "test module " + name,
			Dependencies: deps,
			APIVersion:   plugin.APIVersionCurrent,
		},
	}
}

func (p *testPlugin) record(event string) {
	if p.log != nil {
		p.mu.Lock()
		*p.log = append(*p.log, p.info.Name+":"+event)
		p.mu.Unlock()
	}
}

func (p *testPlugin) Info() plugin.PluginInfo { return p.info }

func (p *testPlugin) Init(_ context.Context, _ plugin.Dependencies) error {
	if p.panicOn == "init" {
		panic("boom")
	}
	p.record("init")
	return p.initErr
}

func (p *testPlugin) Start(_ context.Context) error {
	if p.panicOn == "start" {
		panic("boom")
	}
	p.record("start")
	return p.startErr
}

func (p *testPlugin) Stop(ctx context.Context) error {
	if p.panicOn == "stop" {
		panic("boom")
	}
	if p.stopDelay > 0 {
		select {
		case <-time.After(p.stopDelay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	p.mu.Lock()
	p.stops++
	p.mu.Unlock()
	p.record("stop")
	return nil
}

// validatingPlugin adds plugin.Validator.
type validatingPlugin struct{ *testPlugin }

func (p validatingPlugin) ValidateConfig() error { return p.validErr }

// httpPlugin adds plugin.HTTPProvider.
type httpPlugin struct {
	*testPlugin
	routes []plugin.Route
}

func (p httpPlugin) Routes() []plugin.Route { return p.routes }

// subscriberPlugin adds plugin.EventSubscriber.
type subscriberPlugin struct {
	*testPlugin
	subs []plugin.Subscription
}

func (p subscriberPlugin) Subscriptions() []plugin.Subscription { return p.subs }

// testBus records Subscribe calls.
type testBus struct{ topics []string }

func (b *testBus) Publish(_ context.Context, _ plugin.Event) error { return nil }
func (b *testBus) Subscribe(topic string, _ plugin.EventHandler) func() {
	b.topics = append(b.topics, topic)
	return func() {}
}
func (b *testBus) PublishAsync(_ context.Context, _ plugin.Event) {}
func (b *testBus) SubscribeAll(_ plugin.EventHandler) func()      { return func() {} }

func testDeps() func(string) plugin.Dependencies {
	return func(name string) plugin.Dependencies {
		return plugin.Dependencies{Logger: zap.NewNop().Named(name)}
	}
}

func mustBoot(t *testing.T, reg *Registry) {
	t.Helper()
	if err := reg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if err := reg.InitAll(context.Background(), testDeps()); err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}
	if err := reg.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll() error = %v", err)
	}
}

func TestRegister(t *testing.T) {
	reg := New(zap.NewNop())
	if err := reg.Register(newTestPlugin("workshop")); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := reg.Register(newTestPlugin("workshop")); err == nil {
		t.Error("expected error registering a duplicate name")
	}
	if err := reg.Register(newTestPlugin("")); err == nil {
		t.Error("expected error registering an empty name")
	}
}

func TestValidate_DependencyOrder(t *testing.T) {
	var log []string
	reg := New(zap.NewNop())
	bi := newTestPlugin("bi", "workshop")
	bi.log = &log
	ws := newTestPlugin("workshop")
	ws.log = &log
	_ = reg.Register(bi)
	_ = reg.Register(ws)

	mustBoot(t, reg)
	reg.StopAll(context.Background())

	want := []string{
		"workshop:init", "bi:init",
		"workshop:start", "bi:start",
		"bi:stop", "workshop:stop",
	}
	if strings.Join(log, ",") != strings.Join(want, ",") {
		t.Errorf("lifecycle = %v, want %v", log, want)
	}
}

func TestValidate_CycleDetected(t *testing.T) {
	reg := New(zap.NewNop())
	_ = reg.Register(newTestPlugin("a", "b"))
	_ = reg.Register(newTestPlugin("b", "a"))

	err := reg.Validate()
	if err == nil || !strings.Contains(err.Error(), "cycle") {
		t.Fatalf("Validate() error = %v, want cycle error", err)
	}
}

func TestValidate_MissingDependency(t *testing.T) {
	tests := []struct {
		name     string
		required bool
		wantErr  bool
	}{
		{"optional module is disabled", false, false},
		{"required module fails", true, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			reg := New(zap.NewNop())
			p := newTestPlugin("bi", "workshop")
			p.info.Required = tc.required
			_ = reg.Register(p)

			err := reg.Validate()
			if (err != nil) != tc.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
			if !tc.wantErr && !reg.IsDisabled("bi") {
				t.Error("expected bi to be disabled")
			}
		})
	}
}

func TestValidate_APIVersion(t *testing.T) {
	for _, v := range []int{plugin.APIVersionMin - 1, plugin.APIVersionCurrent + 1} {
		reg := New(zap.NewNop())
		p := newTestPlugin("old")
		p.info.APIVersion = v
		_ = reg.Register(p)
		if err := reg.Validate(); err != nil {
			t.Fatalf("Validate() error = %v", err)
		}
		if !reg.IsDisabled("old") {
			t.Errorf("api version %d: expected module to be disabled", v)
		}
	}
}

func TestValidate_CascadeDisable(t *testing.T) {
	reg := New(zap.NewNop())
	a := newTestPlugin("a")
	a.info.APIVersion = 0
	_ = reg.Register(a)
	_ = reg.Register(newTestPlugin("b", "a"))
	_ = reg.Register(newTestPlugin("c", "b"))

	if err := reg.Validate(); err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	for _, name := range []string{"a", "b", "c"} {
		if !reg.IsDisabled(name) {
			t.Errorf("expected %q to be disabled", name)
		}
	}
}

func TestInitAll_Failures(t *testing.T) {
	tests := []struct {
		name    string
		plugin  func() plugin.Plugin
		wantErr string
	}{
		{
			name: "init error",
			plugin: func() plugin.Plugin {
				p := newTestPlugin("bi")
				p.initErr = errors.New("bad")
				return p
			},
			wantErr: "failed to initialize",
		},
		{
			name: "validator error",
			plugin: func() plugin.Plugin {
				p := newTestPlugin("bi")
				p.validErr = errors.New("alpha out of range")
				return validatingPlugin{p}
			},
			wantErr: "alpha out of range",
		},
		{
			name: "init panic",
			plugin: func() plugin.Plugin {
				p := newTestPlugin("bi")
				p.panicOn = "init"
				return p
			},
			wantErr: "panicked",
		},
	}
	for _, tc := range tests {
		t.Run(tc.name+"/optional", func(t *testing.T) {
			reg := New(zap.NewNop())
			_ = reg.Register(tc.plugin())
			_ = reg.Register(newTestPlugin("workshop"))
			_ = reg.Validate()

			if err := reg.InitAll(context.Background(), testDeps()); err != nil {
				t.Fatalf("InitAll() error = %v", err)
			}
			if !reg.IsDisabled("bi") {
				t.Error("expected bi to be disabled")
			}
			if reg.IsDisabled("workshop") {
				t.Error("expected workshop to remain active")
			}
		})
		t.Run(tc.name+"/required", func(t *testing.T) {
			reg := New(zap.NewNop())
			p := tc.plugin()
			reg.plugins[p.Info().Name] = p
			info := p.Info()
			info.Required = true
			reg.infos[info.Name] = info
			_ = reg.Validate()

			err := reg.InitAll(context.Background(), testDeps())
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("InitAll() error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestInitAll_WiresSubscriptions(t *testing.T) {
	reg := New(zap.NewNop())
	noop := func(context.Context, plugin.Event) {}
	_ = reg.Register(subscriberPlugin{
		testPlugin: newTestPlugin("stream"),
		subs: []plugin.Subscription{
			{Topic: "bi.alert.raised", Handler: noop},
			{Topic: "workshop.import.completed", Handler: noop},
		},
	})
	_ = reg.Validate()

	bus := &testBus{}
	err := reg.InitAll(context.Background(), func(name string) plugin.Dependencies {
		return plugin.Dependencies{Logger: zap.NewNop(), Bus: bus}
	})
	if err != nil {
		t.Fatalf("InitAll() error = %v", err)
	}
	if got := strings.Join(bus.topics, ","); got != "bi.alert.raised,workshop.import.completed" {
		t.Errorf("subscribed topics = %q", got)
	}
}

func TestStartAll_Panic(t *testing.T) {
	reg := New(zap.NewNop())
	p := newTestPlugin("bi")
	p.panicOn = "start"
	_ = reg.Register(p)
	_ = reg.Register(newTestPlugin("workshop"))
	_ = reg.Validate()
	_ = reg.InitAll(context.Background(), testDeps())

	if err := reg.StartAll(context.Background()); err != nil {
		t.Fatalf("StartAll() error = %v", err)
	}
	if !reg.IsDisabled("bi") {
		t.Error("expected panicking module to be disabled")
	}
	if len(reg.All()) != 1 {
		t.Errorf("All() = %d modules, want 1", len(reg.All()))
	}
}

func TestStopAll_PanicDoesNotBlockOthers(t *testing.T) {
	reg := New(zap.NewNop())
	bad := newTestPlugin("bad")
	bad.panicOn = "stop"
	good := newTestPlugin("good")
	_ = reg.Register(bad)
	_ = reg.Register(good)
	mustBoot(t, reg)

	reg.StopAll(context.Background())

	if good.stops != 1 {
		t.Errorf("good stops = %d, want 1", good.stops)
	}
}

func TestStopAll_ContextTimeout(t *testing.T) {
	reg := New(zap.NewNop())
	slow := newTestPlugin("slow")
	slow.stopDelay = 5 * time.Second
	fast := newTestPlugin("fast")
	_ = reg.Register(slow)
	_ = reg.Register(fast)
	mustBoot(t, reg)

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	reg.StopAll(ctx)
	if elapsed := time.Since(start); elapsed > time.Second {
		t.Errorf("StopAll took %v, want well under 1s", elapsed)
	}
	if fast.stops != 1 {
		t.Errorf("fast stops = %d, want 1", fast.stops)
	}
}

func TestAllRoutesAndResolve(t *testing.T) {
	reg := New(zap.NewNop())
	ws := newTestPlugin("workshop")
	ws.info.Roles = []string{"workshop_data"}
	_ = reg.Register(ws)
	_ = reg.Register(httpPlugin{
		testPlugin: newTestPlugin("bi", "workshop"),
		routes:     []plugin.Route{{Method: "GET", Path: "/overview"}},
	})
	mustBoot(t, reg)

	routes := reg.AllRoutes()
	if len(routes) != 1 || len(routes["bi"]) != 1 {
		t.Fatalf("AllRoutes() = %v, want one bi route", routes)
	}
	if _, ok := reg.Resolve("workshop"); !ok {
		t.Error("Resolve(workshop) not found")
	}
	if _, ok := reg.Resolve("nope"); ok {
		t.Error("Resolve(nope) unexpectedly found")
	}
	if got := reg.ResolveByRole("workshop_data"); len(got) != 1 {
		t.Errorf("ResolveByRole() = %d modules, want 1", len(got))
	}
}

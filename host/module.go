package host

import (
	"context"

	"github.com/tetratelabs/wazero"
	"github.com/tetratelabs/wazero/api"
	"go.uber.org/zap"

	"github.com/wippyai/devtable/current"
	"github.com/wippyai/devtable/device"
	"github.com/wippyai/devtable/errors"
	"github.com/wippyai/devtable/table"
)

// DefaultModuleName is the import module name guests use.
const DefaultModuleName = "devtable"

// Options configures the host module.
type Options struct {
	// Logger receives diagnostics for failed guest calls. Nil uses the package Logger.
	Logger *zap.Logger

	// ModuleName overrides DefaultModuleName.
	ModuleName string
}

// DefaultOptions returns default host module configuration.
func DefaultOptions() Options {
	return Options{
		ModuleName: DefaultModuleName,
	}
}

// Module binds a device table and a current-device slot to guest imports.
type Module struct {
	table *table.Table
	slot  *current.Slot
	log   *zap.Logger
	name  string
}

// New creates a host module over tbl and slot. A nil slot uses the default slot.
func New(tbl *table.Table, slot *current.Slot, opts Options) *Module {
	if slot == nil {
		slot = current.Default()
	}
	name := opts.ModuleName
	if name == "" {
		name = DefaultModuleName
	}
	log := opts.Logger
	if log == nil {
		log = Logger()
	}
	return &Module{
		table: tbl,
		slot:  slot,
		log:   log,
		name:  name,
	}
}

// Name returns the import module name.
func (m *Module) Name() string {
	return m.name
}

type hostFunc struct {
	name    string
	fn      api.GoModuleFunc
	params  []api.ValueType
	results []api.ValueType
}

var (
	i32 = api.ValueTypeI32
	i64 = api.ValueTypeI64
)

func (m *Module) functions() []hostFunc {
	return []hostFunc{
		{"allocate", m.allocate, []api.ValueType{i64}, []api.ValueType{i32}},
		{"get", m.get, []api.ValueType{i64, i32}, []api.ValueType{i32}},
		{"find", m.find, []api.ValueType{i32, i32, i32, i32}, []api.ValueType{i32}},
		{"remove", m.remove, []api.ValueType{i64}, []api.ValueType{i32}},
		{"release", m.release, []api.ValueType{i64}, []api.ValueType{i32}},
		{"set_current", m.setCurrent, []api.ValueType{i64}, []api.ValueType{i32}},
		{"clear_current", m.clearCurrent, nil, []api.ValueType{i32}},
		{"get_current", m.getCurrent, nil, []api.ValueType{i64}},
	}
}

// Instantiate builds the host module into rt.
func (m *Module) Instantiate(ctx context.Context, rt wazero.Runtime) (api.Module, error) {
	builder := rt.NewHostModuleBuilder(m.name)
	for _, f := range m.functions() {
		builder.NewFunctionBuilder().
			WithGoModuleFunction(f.fn, f.params, f.results).
			Export(f.name)
	}

	mod, err := builder.Instantiate(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.PhaseHost, errors.KindFailure, err, "instantiate host module "+m.name)
	}
	return mod, nil
}

func (m *Module) allocate(_ context.Context, _ api.Module, stack []uint64) {
	_, err := m.table.Allocate(device.ID(stack[0]))
	stack[0] = m.result("allocate", err)
}

func (m *Module) get(_ context.Context, _ api.Module, stack []uint64) {
	_, err := m.table.Get(device.ID(stack[0]), device.Type(api.DecodeU32(stack[1])))
	stack[0] = m.result("get", err)
}

func (m *Module) find(_ context.Context, mod api.Module, stack []uint64) {
	namePtr := api.DecodeU32(stack[0])
	nameLen := api.DecodeU32(stack[1])
	typ := device.Type(api.DecodeU32(stack[2]))
	idOut := api.DecodeU32(stack[3])

	stack[0] = m.result("find", m.findIn(mod.Memory(), namePtr, nameLen, typ, idOut))
}

// findIn reads the name from guest memory and writes the matching id back.
func (m *Module) findIn(mem api.Memory, namePtr, nameLen uint32, typ device.Type, idOut uint32) error {
	if mem == nil {
		return errors.Failure(errors.PhaseHost, "caller has no memory")
	}
	name, ok := mem.Read(namePtr, nameLen)
	if !ok {
		return errors.New(errors.PhaseHost, errors.KindFailure).
			Detail("name out of bounds: ptr=%d len=%d", namePtr, nameLen).
			Build()
	}

	id, _, err := m.table.Lookup(string(name), typ)
	if err != nil {
		return err
	}
	if !mem.WriteUint64Le(idOut, uint64(id)) {
		return errors.New(errors.PhaseHost, errors.KindFailure).
			ID(id).
			Detail("id_out out of bounds: ptr=%d", idOut).
			Build()
	}
	return nil
}

func (m *Module) remove(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = m.result("remove", m.table.Remove(device.ID(stack[0])))
}

func (m *Module) release(_ context.Context, _ api.Module, stack []uint64) {
	stack[0] = m.result("release", m.table.Release(device.ID(stack[0])))
}

func (m *Module) setCurrent(ctx context.Context, _ api.Module, stack []uint64) {
	stack[0] = m.result("set_current", m.slot.Set(ctx, device.ID(stack[0])))
}

func (m *Module) clearCurrent(ctx context.Context, _ api.Module, stack []uint64) {
	stack[0] = m.result("clear_current", m.slot.Clear(ctx))
}

func (m *Module) getCurrent(ctx context.Context, _ api.Module, stack []uint64) {
	id, ok := m.slot.Get(ctx)
	if !ok {
		stack[0] = api.EncodeI64(-1)
		return
	}
	stack[0] = uint64(id)
}

func (m *Module) result(fn string, err error) uint64 {
	errno := errors.Errno(err)
	if errno != 0 {
		m.log.Debug("host call failed",
			zap.String("module", m.name),
			zap.String("func", fn),
			zap.Int("errno", int(errno)),
			zap.Error(err))
	}
	return api.EncodeI32(int32(errno))
}

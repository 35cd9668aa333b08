package ifmgr

import (
	"sort"
	"sync"
)

type Manager struct {
	mu      sync.RWMutex
	byIndex map[int]*Interface
	byName  map[string]*Interface
}

func New() *Manager {
	return &Manager{
		byIndex: make(map[int]*Interface),
		byName:  make(map[string]*Interface),
	}
}

func (m *Manager) Add(iface *Interface) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if old, ok := m.byIndex[iface.Index]; ok && old.Name != iface.Name {
		delete(m.byName, old.Name)
	}

	m.byIndex[iface.Index] = iface
	if iface.Name != "" {
		m.byName[iface.Name] = iface
	}
}

func (m *Manager) Get(index int) *Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.byIndex[index]
}

func (m *Manager) GetByName(name string) *Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.byName[name]
}

// List returns interfaces sorted by name.
func (m *Manager) List() []*Interface {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := make([]*Interface, 0, len(m.byIndex))
	for _, iface := range m.byIndex {
		result = append(result, iface)
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Name < result[j].Name
	})
	return result
}

func (m *Manager) SwitchPorts() []*Interface {
	var result []*Interface
	for _, iface := range m.List() {
		if iface.SwitchPort {
			result = append(result, iface)
		}
	}
	return result
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return len(m.byIndex)
}

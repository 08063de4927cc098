package agent

import (
	"fmt"
	"sort"
	"sync"
)

// Registry holds the agents, skills, and agent→skill bindings. It is built
// once at startup and passed by reference to the orchestrator; there is no
// package-level instance.
type Registry struct {
	mu       sync.RWMutex
	agents   map[string]*Agent
	skills   map[string]Skill
	bindings map[string][]string // agent name -> skill names, in binding order
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		agents:   make(map[string]*Agent),
		skills:   make(map[string]Skill),
		bindings: make(map[string][]string),
	}
}

// RegisterAgent adds an agent to the registry.
// Returns an error if the name is already taken.
func (r *Registry) RegisterAgent(a *Agent) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.agents[a.Name]; exists {
		return fmt.Errorf("agent %q already registered", a.Name)
	}
	r.agents[a.Name] = a
	r.bindings[a.Name] = nil
	return nil
}

// RegisterSkill binds a skill to an agent, registering the skill itself on
// first sight. The agent must exist.
func (r *Registry) RegisterSkill(agentName string, s Skill) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.agents[agentName]; !exists {
		return fmt.Errorf("agent %q not found", agentName)
	}
	r.skills[s.Name()] = s
	r.bindings[agentName] = append(r.bindings[agentName], s.Name())
	return nil
}

// Agent returns an agent by name.
func (r *Registry) Agent(name string) (*Agent, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	a, ok := r.agents[name]
	return a, ok
}

// Skill returns a skill by name.
func (r *Registry) Skill(name string) (Skill, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.skills[name]
	return s, ok
}

// AgentSkills returns the skill names bound to an agent, in binding order.
func (r *Registry) AgentSkills(agentName string) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, len(r.bindings[agentName]))
	copy(out, r.bindings[agentName])
	return out
}

// HasBinding reports whether skillName is bound to agentName.
func (r *Registry) HasBinding(agentName, skillName string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range r.bindings[agentName] {
		if name == skillName {
			return true
		}
	}
	return false
}

// Agents returns all registered agent names, sorted.
func (r *Registry) Agents() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.agents))
	for name := range r.agents {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Skills returns all registered skill names, sorted.
func (r *Registry) Skills() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.skills))
	for name := range r.skills {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Summary describes the registry state for introspection.
type Summary struct {
	Agents   []string            `json:"agents"`
	Skills   []string            `json:"skills"`
	Bindings map[string][]string `json:"bindings"`
}

// Summarize returns a snapshot of agents, skills, and bindings.
func (r *Registry) Summarize() Summary {
	r.mu.RLock()
	defer r.mu.RUnlock()
	bindings := make(map[string][]string, len(r.bindings))
	for name, skills := range r.bindings {
		out := make([]string, len(skills))
		copy(out, skills)
		bindings[name] = out
	}
	s := Summary{Bindings: bindings}
	for name := range r.agents {
		s.Agents = append(s.Agents, name)
	}
	for name := range r.skills {
		s.Skills = append(s.Skills, name)
	}
	sort.Strings(s.Agents)
	sort.Strings(s.Skills)
	return s
}

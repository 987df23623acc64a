package sim

import (
	"fmt"
	"hash/fnv"
	"math/rand"
)

// === SimulationKey ===

// SimulationKey uniquely identifies a reproducible generator run.
// Two runs with the same SimulationKey and identical configuration and
// reference data MUST produce bit-for-bit identical transactions.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// === Subsystem Constants ===

// Subsystems are consumed by Simulation.Simulate in this order:
// stores, customers, purchasing models, model assignment, then one
// stream per customer for visits.
const (
	// SubsystemStores places stores on sampled locations.
	SubsystemStores = "stores"

	// SubsystemCustomers places customers and draws their names.
	SubsystemCustomers = "customers"

	// SubsystemPurchasingModels parameterizes product affinities and basket sizes.
	SubsystemPurchasingModels = "purchasing_models"

	// SubsystemModelAssignment binds each customer to one purchasing model.
	SubsystemModelAssignment = "model_assignment"
)

// SubsystemCustomer returns the subsystem name for customer N's visit stream.
func SubsystemCustomer(id int) string {
	return fmt.Sprintf("customer_%d", id)
}

// === PartitionedRNG ===

// PartitionedRNG provides deterministic, isolated RNG instances per subsystem.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from single goroutine.
// Per-customer streams that are consumed concurrently come from
// NewCustomerRNG, which does not touch the cache.
type PartitionedRNG struct {
	key        SimulationKey
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:        key,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns a deterministically-seeded RNG for the named subsystem.
// The same subsystem name always returns the same *rand.Rand instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.subsystems[name]; ok {
		return rng
	}
	rng := rand.New(rand.NewSource(DeriveSeed(p.key, name)))
	p.subsystems[name] = rng
	return rng
}

// Key returns the SimulationKey used to create this PartitionedRNG.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

// DeriveSeed returns the pre-committed seed of a subsystem stream.
func DeriveSeed(key SimulationKey, name string) int64 {
	return int64(key) ^ fnv1a64(name)
}

// NewCustomerRNG returns a fresh RNG for one customer's visit process.
// The stream depends only on the key and the customer id, so customers
// can be simulated in any order or in parallel.
func NewCustomerRNG(key SimulationKey, customerID int) *rand.Rand {
	return rand.New(rand.NewSource(DeriveSeed(key, SubsystemCustomer(customerID))))
}

// fnv1a64 computes a 64-bit FNV-1a hash of the input string.
func fnv1a64(s string) int64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return int64(h.Sum64())
}

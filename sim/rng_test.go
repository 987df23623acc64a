package sim

import (
	"math"
	"testing"
)

// === SimulationKey Tests ===

func TestSimulationKey_Creation(t *testing.T) {
	tests := []struct {
		name string
		seed int64
	}{
		{"positive seed", 42},
		{"zero seed", 0},
		{"negative seed", -1},
		{"max int64", math.MaxInt64},
		{"min int64", math.MinInt64},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key := NewSimulationKey(tt.seed)
			if int64(key) != tt.seed {
				t.Errorf("NewSimulationKey(%d) = %d, want %d", tt.seed, key, tt.seed)
			}
		})
	}
}

// === PartitionedRNG Tests ===

func TestPartitionedRNG_DeterministicDerivation(t *testing.T) {
	// Same key+name produces same sequence
	rng1 := NewPartitionedRNG(NewSimulationKey(42))
	rng2 := NewPartitionedRNG(NewSimulationKey(42))

	for i := 0; i < 3; i++ {
		v1 := rng1.ForSubsystem(SubsystemStores).Float64()
		v2 := rng2.ForSubsystem(SubsystemStores).Float64()
		if v1 != v2 {
			t.Errorf("Value %d: got %v and %v, want identical", i, v1, v2)
		}
	}
}

func TestPartitionedRNG_SubsystemIsolation(t *testing.T) {
	// Drawing from the stores stream doesn't shift the customers stream
	rngA := NewPartitionedRNG(NewSimulationKey(42))
	for i := 0; i < 10; i++ {
		rngA.ForSubsystem(SubsystemStores).Float64()
	}
	aFirst := rngA.ForSubsystem(SubsystemCustomers).Float64()

	fresh := NewPartitionedRNG(NewSimulationKey(42))
	want := fresh.ForSubsystem(SubsystemCustomers).Float64()

	if aFirst != want {
		t.Errorf("customers first value = %v, want %v (isolation broken)", aFirst, want)
	}
}

func TestPartitionedRNG_DistinctSubsystemsDiffer(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))
	names := []string{SubsystemStores, SubsystemCustomers, SubsystemPurchasingModels, SubsystemModelAssignment}
	seen := make(map[float64]string)
	for _, name := range names {
		v := rng.ForSubsystem(name).Float64()
		if other, ok := seen[v]; ok {
			t.Errorf("subsystems %q and %q produced the same first value %v", name, other, v)
		}
		seen[v] = name
	}
}

func TestPartitionedRNG_CachesInstance(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	rng1 := rng.ForSubsystem(SubsystemStores)
	rng2 := rng.ForSubsystem(SubsystemStores)

	if rng1 != rng2 {
		t.Error("ForSubsystem returned different instances for same name")
	}
}

func TestPartitionedRNG_Key(t *testing.T) {
	seed := int64(12345)
	rng := NewPartitionedRNG(NewSimulationKey(seed))

	if rng.Key() != SimulationKey(seed) {
		t.Errorf("Key() = %v, want %v", rng.Key(), seed)
	}
}

func TestPartitionedRNG_NegativeSeed(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(math.MinInt64))

	val := rng.ForSubsystem(SubsystemStores).Float64()
	if val < 0 || val >= 1 {
		t.Errorf("Float64() returned %v, want [0, 1)", val)
	}
}

func TestPartitionedRNG_LazyInitialization(t *testing.T) {
	rng := NewPartitionedRNG(NewSimulationKey(42))

	if len(rng.subsystems) != 0 {
		t.Errorf("New PartitionedRNG has %d subsystems, want 0", len(rng.subsystems))
	}
	rng.ForSubsystem(SubsystemStores)
	if len(rng.subsystems) != 1 {
		t.Errorf("after one ForSubsystem call, %d subsystems cached, want 1", len(rng.subsystems))
	}
}

// === Customer streams ===

func TestNewCustomerRNG_SameIDSameStream(t *testing.T) {
	key := NewSimulationKey(7)
	a := NewCustomerRNG(key, 3)
	b := NewCustomerRNG(key, 3)
	for i := 0; i < 5; i++ {
		if a.Int63() != b.Int63() {
			t.Fatalf("draw %d differs for the same customer id", i)
		}
	}
}

func TestNewCustomerRNG_DifferentIDsDiffer(t *testing.T) {
	key := NewSimulationKey(7)
	if NewCustomerRNG(key, 0).Int63() == NewCustomerRNG(key, 1).Int63() {
		t.Error("customers 0 and 1 share a first draw; streams are not isolated")
	}
}

func TestNewCustomerRNG_MatchesDerivedSubsystemSeed(t *testing.T) {
	// The customer stream is the subsystem stream named customer_<id>,
	// without going through the PartitionedRNG cache.
	key := NewSimulationKey(99)
	p := NewPartitionedRNG(key)
	want := p.ForSubsystem(SubsystemCustomer(4)).Float64()
	got := NewCustomerRNG(key, 4).Float64()
	if got != want {
		t.Errorf("NewCustomerRNG first value = %v, want %v", got, want)
	}
}

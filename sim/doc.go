// Package sim provides the stochastic engine that generates synthetic pet
// store transactions.
//
// # Reading Guide
//
// Start with these three files to understand the generator:
//   - simulation.go: the orchestrator and the order in which randomness is consumed
//   - transaction_simulator.go: per-customer visit processes and transaction assembly
//   - purchasing.go: product affinity and basket-size models
//
// # Architecture
//
// The sim package holds the engine; adapters live in sub-packages:
//   - sim/refdata/: loading zip code reference tables into a ReferenceDataSet
//   - sim/sink/: writing transactions to transactions.txt or SQLite
//
// # Reproducibility
//
// Every draw comes from a PartitionedRNG keyed by the run's seed. Setup
// stages use named subsystems (stores, customers, purchasing_models,
// model_assignment); each customer's visits use a stream derived from
// the seed and the customer id. No function reads global randomness.
//
// # Key Interfaces
//
// The extension points are single-method or small interfaces:
//   - StoreSelector: which store a customer visits
//   - VisitSampler: inter-visit intervals
//   - BasketSizeSampler: items per visit
package sim

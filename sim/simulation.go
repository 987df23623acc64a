package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// InputData is everything a Simulation reads besides its Config: the zip
// code reference table, the name pools and the product catalog.
type InputData struct {
	Zipcodes   *ReferenceDataSet
	FirstNames []WeightedName
	LastNames  []WeightedName
	Products   []Product
}

// NewInputData pairs a reference table with the built-in name pools and
// catalog.
func NewInputData(zipcodes *ReferenceDataSet) *InputData {
	return &InputData{
		Zipcodes:   zipcodes,
		FirstNames: DefaultFirstNames(),
		LastNames:  DefaultLastNames(),
		Products:   DefaultCatalog(),
	}
}

// Simulation wires the generator together: one seed, one PartitionedRNG,
// and the build order stores → customers → purchasing models → model
// assignment → transactions.
type Simulation struct {
	input *InputData
	cfg   Config

	ran          bool
	err          error
	stores       []*Store
	customers    []*Customer
	models       []*PurchasingModel
	transactions []*Transaction
}

// NewSimulation creates a Simulation. Nothing runs until Simulate.
func NewSimulation(input *InputData, cfg Config) *Simulation {
	return &Simulation{input: input, cfg: cfg}
}

// Simulate runs the full pipeline once and caches the result. Later calls
// return the cached error without running again. On failure nothing
// partial is kept.
func (s *Simulation) Simulate() error {
	if s.ran {
		return s.err
	}
	s.ran = true
	s.err = s.run()
	if s.err != nil {
		s.stores, s.customers, s.models, s.transactions = nil, nil, nil, nil
	}
	return s.err
}

func (s *Simulation) run() error {
	if err := s.cfg.Validate(); err != nil {
		return err
	}
	if s.input == nil {
		return invalidInputf("no input data")
	}

	rng := NewPartitionedRNG(NewSimulationKey(s.cfg.Seed))
	logrus.Infof("Generating %d stores, %d customers, %d purchasing models over %.2f days (seed %d)",
		s.cfg.NumStores, s.cfg.NumCustomers, s.cfg.NumPurchasingModels, s.cfg.SimulationTime, s.cfg.Seed)

	locations, err := NewLocationSampler(s.input.Zipcodes, s.cfg.LocationWeighting)
	if err != nil {
		return fmt.Errorf("building location sampler: %w", err)
	}

	stores, err := BuildStores(s.cfg.NumStores, locations, rng.ForSubsystem(SubsystemStores))
	if err != nil {
		return err
	}
	logrus.Debugf("built %d stores", len(stores))

	firstNames, err := NewNamePool(s.input.FirstNames)
	if err != nil {
		return fmt.Errorf("first names: %w", err)
	}
	lastNames, err := NewNamePool(s.input.LastNames)
	if err != nil {
		return fmt.Errorf("last names: %w", err)
	}
	customers, err := BuildCustomers(s.cfg.NumCustomers, locations, firstNames, lastNames, rng.ForSubsystem(SubsystemCustomers))
	if err != nil {
		return err
	}
	logrus.Debugf("built %d customers", len(customers))

	catalog, err := NewCatalog(s.input.Products)
	if err != nil {
		return err
	}
	models, err := BuildModels(s.cfg.NumPurchasingModels, catalog, s.cfg.Models, rng.ForSubsystem(SubsystemPurchasingModels))
	if err != nil {
		return err
	}
	if _, err := AssignModels(customers, models, rng.ForSubsystem(SubsystemModelAssignment)); err != nil {
		return err
	}
	logrus.Debugf("assigned %d purchasing models over %d products", len(models), len(catalog))

	selector, err := NewStoreSelector(s.cfg.StoreSelection)
	if err != nil {
		return err
	}
	ts := NewTransactionSimulator(rng.Key(), stores, customers, selector, s.cfg.VisitRates, s.cfg.Workers)
	transactions, err := ts.Run(s.cfg.SimulationTime)
	if err != nil {
		return err
	}

	s.stores, s.customers, s.models, s.transactions = stores, customers, models, transactions
	logrus.Infof("Generated %d transactions", len(transactions))
	return nil
}

// result returns the cached run error, or ErrNotSimulated.
func (s *Simulation) result() error {
	if !s.ran {
		return ErrNotSimulated
	}
	return s.err
}

// Transactions returns the generated transactions (possibly empty).
func (s *Simulation) Transactions() ([]*Transaction, error) {
	if err := s.result(); err != nil {
		return nil, err
	}
	return s.transactions, nil
}

// Stores returns the generated stores.
func (s *Simulation) Stores() ([]*Store, error) {
	if err := s.result(); err != nil {
		return nil, err
	}
	return s.stores, nil
}

// Customers returns the generated customers.
func (s *Simulation) Customers() ([]*Customer, error) {
	if err := s.result(); err != nil {
		return nil, err
	}
	return s.customers, nil
}

// Models returns the generated purchasing models.
func (s *Simulation) Models() ([]*PurchasingModel, error) {
	if err := s.result(); err != nil {
		return nil, err
	}
	return s.models, nil
}

// Config returns the configuration the Simulation was created with.
func (s *Simulation) Config() Config {
	return s.cfg
}

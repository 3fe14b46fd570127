// Package migration orchestrates a catalog migration run: brands, then
// categories, then products, each stage feeding identifier mappings to the
// next, with an emailed run log at the end of every run.
package migration

import (
	"context"
	"sync"

	"go.uber.org/zap"

	"github.com/storesync/migrator/internal/domain/catalog"
	"github.com/storesync/migrator/internal/domain/migration"
)

// Service sequences the three migration stages against a source and a
// destination store. Runs are strictly serialized: a trigger that fires
// while a run is still in progress is skipped.
type Service struct {
	source   Catalog
	dest     Catalog
	notifier Notifier
	sink     migration.Sink
	logger   *zap.Logger

	running sync.Mutex
}

// NewService creates a migration service.
func NewService(source, dest Catalog, notifier Notifier, sink migration.Sink, logger *zap.Logger) *Service {
	return &Service{
		source:   source,
		dest:     dest,
		notifier: notifier,
		sink:     sink,
		logger:   logger,
	}
}

// RunMigration executes one full migration run. It is the fire-and-forget
// entry point the scheduler calls: it never returns an error and never
// panics across its boundary; every outcome is observable through the run
// log and the notification.
func (s *Service) RunMigration(ctx context.Context) {
	if !s.running.TryLock() {
		s.logger.Warn("Migration run already in progress, skipping trigger")
		return
	}
	defer s.running.Unlock()

	run := migration.NewRun(s.sink)
	s.logger.Info("Migration run started", zap.String("run_id", run.ID.String()))

	s.execute(ctx, run)
	s.report(ctx, run)

	s.logger.Info("Migration run finished",
		zap.String("run_id", run.ID.String()),
		zap.String("state", string(run.State)),
		zap.Int("brands", run.Count(migration.StageBrands)),
		zap.Int("categories", run.Count(migration.StageCategories)),
		zap.Int("products", run.Count(migration.StageProducts)),
	)
}

// execute advances through the stages in dependency order. A fatal fetch
// error at any stage skips the remaining stages; per-item creation failures
// never do.
func (s *Service) execute(ctx context.Context, run *migration.Run) {
	run.Begin(migration.StageBrands)
	brands, err := s.migrateBrands(ctx, run)
	if err != nil {
		s.abort(run, "brand", err)
		return
	}

	run.Begin(migration.StageCategories)
	categories, err := s.migrateCategories(ctx, run)
	if err != nil {
		s.abort(run, "category", err)
		return
	}

	run.Begin(migration.StageProducts)
	if err := s.migrateProducts(ctx, run, brands, categories); err != nil {
		s.abort(run, "product", err)
		return
	}

	run.Complete()
}

// abort records a fatal stage error and moves the run to the failed state.
func (s *Service) abort(run *migration.Run, stage string, err error) {
	run.Logf("Fatal error during %s migration: %v", stage, err)
	run.Fail()
	s.logger.Error("Migration run aborted",
		zap.String("run_id", run.ID.String()),
		zap.String("stage", stage),
		zap.Error(err),
	)
}

// migrateBrands copies every source brand to the destination and returns the
// brand identifier map. Brands carry no ordering dependency.
func (s *Service) migrateBrands(ctx context.Context, run *migration.Run) (*catalog.IdentifierMap, error) {
	sourceBrands, err := s.source.ListBrands(ctx)
	if err != nil {
		return nil, err
	}

	ids := catalog.NewIdentifierMap()
	for _, brand := range sourceBrands {
		payload := catalog.BrandPayload{Name: brand.Name}
		destID, ok := s.createResource(ctx, run, migration.StageBrands, "brand", brand.Name, payload, func() (int, error) {
			return s.dest.CreateBrand(ctx, payload)
		})
		if ok {
			ids.Put(brand.ID, destID)
		}
	}
	run.Logf("Migrated %d brands", ids.Len())
	return ids, nil
}

// migrateCategories copies every source category to the destination in an
// order where each category's parent is created first, translating parent
// references through the growing identifier map. A parent with no mapping
// attaches the category at the destination root.
func (s *Service) migrateCategories(ctx context.Context, run *migration.Run) (*catalog.IdentifierMap, error) {
	sourceCategories, err := s.source.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	ordered, err := catalog.SortCategoriesByDependency(sourceCategories)
	if err != nil {
		return nil, err
	}

	ids := catalog.NewIdentifierMap()
	for _, category := range ordered {
		parentID, _ := ids.Lookup(category.ParentID) // zero value is the destination root
		payload := catalog.CategoryPayload{Name: category.Name, ParentID: parentID}
		destID, ok := s.createResource(ctx, run, migration.StageCategories, "category", category.Name, payload, func() (int, error) {
			return s.dest.CreateCategory(ctx, payload)
		})
		if ok {
			ids.Put(category.ID, destID)
		}
	}
	run.Logf("Migrated %d categories", ids.Len())
	return ids, nil
}

// migrateProducts copies every source product to the destination,
// translating brand and category references through the maps the earlier
// stages produced. Unmapped category references are dropped; an unmapped
// brand reference is nulled.
func (s *Service) migrateProducts(ctx context.Context, run *migration.Run, brands, categories *catalog.IdentifierMap) error {
	sourceProducts, err := s.source.ListProducts(ctx)
	if err != nil {
		return err
	}

	for _, product := range sourceProducts {
		payload := s.buildProductPayload(product, brands, categories)
		s.createResource(ctx, run, migration.StageProducts, "product", product.Name, payload, func() (int, error) {
			return s.dest.CreateProduct(ctx, payload)
		})
	}
	run.Logf("Migrated %d products", run.Count(migration.StageProducts))
	return nil
}

// buildProductPayload normalizes a source product into a destination
// creation payload: fixed physical type, zero weight when absent, the price
// carried through unchanged, and all references remapped.
func (s *Service) buildProductPayload(product catalog.Product, brands, categories *catalog.IdentifierMap) catalog.ProductPayload {
	categoryIDs := make([]int, 0, len(product.CategoryIDs))
	for _, sourceID := range product.CategoryIDs {
		if destID, ok := categories.Lookup(sourceID); ok {
			categoryIDs = append(categoryIDs, destID)
		}
	}

	var brandID *int
	if destID, ok := brands.Lookup(product.BrandID); ok {
		brandID = &destID
	}

	return catalog.ProductPayload{
		Name:        product.Name,
		Type:        catalog.ProductTypePhysical,
		Price:       product.Price,
		Weight:      product.Weight,
		CategoryIDs: categoryIDs,
		BrandID:     brandID,
	}
}

// validatable is implemented by every creation payload.
type validatable interface {
	Validate() error
}

// createResource submits one resource-creation request and appends exactly
// one log entry: success with the resource name, or failure with the
// server's reported detail. A failed creation never aborts the run; the item
// is simply absent from the identifier map.
func (s *Service) createResource(
	ctx context.Context,
	run *migration.Run,
	stage migration.Stage,
	label, name string,
	payload validatable,
	create func() (int, error),
) (int, bool) {
	if err := ctx.Err(); err != nil {
		run.Logf("Failed to create %s %s: %v", label, name, err)
		return 0, false
	}
	if err := payload.Validate(); err != nil {
		run.Logf("Failed to create %s %s: %v", label, name, err)
		return 0, false
	}

	destID, err := create()
	if err != nil {
		run.Logf("Failed to create %s %s: %v", label, name, err)
		return 0, false
	}

	run.Logf("Created %s %s", label, name)
	run.RecordCreated(stage)
	return destID, true
}

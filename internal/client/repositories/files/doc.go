// Package files caches backend file listings in the local SQLite database.
//
// A listing is keyed by category and subfolder and is always replaced as a
// whole, inside one transaction, so a reader never sees half of an old
// listing mixed with half of a new one. Rows for individual paths can be
// dropped after a delete or move without refetching.
//
//	repo := files.NewSQLiteRepository(db)
//	_ = repo.Replace(ctx, files.Key{Category: models.CategoryVideo}, items)
//	cached, _ := repo.List(ctx, key)
//	_ = repo.ForgetPaths(ctx, []string{"videos/a.mp4"})
package files

package seeder

import (
	"context"
	"fmt"

	"profile-sync/internal/database"
	"profile-sync/internal/domain/skill"
	"profile-sync/internal/taxonomy"
)

// TaxonomySeeder loads a starter set of canonical skills plus their curated
// aliases. Everything is idempotent; reruns are no-ops.
type TaxonomySeeder struct{}

func (TaxonomySeeder) Name() string { return "taxonomy" }

var starterSkills = []struct {
	Name     string
	Category skill.Category
}{
	{Name: "Go", Category: skill.CategoryProgrammingLanguage},
	{Name: "JavaScript", Category: skill.CategoryProgrammingLanguage},
	{Name: "TypeScript", Category: skill.CategoryProgrammingLanguage},
	{Name: "Python", Category: skill.CategoryProgrammingLanguage},
	{Name: "Java", Category: skill.CategoryProgrammingLanguage},
	{Name: "React", Category: skill.CategoryFrontend},
	{Name: "Vue", Category: skill.CategoryFrontend},
	{Name: "Node.js", Category: skill.CategoryBackend},
	{Name: "PostgreSQL", Category: skill.CategoryDatabase},
	{Name: "MySQL", Category: skill.CategoryDatabase},
	{Name: "MongoDB", Category: skill.CategoryDatabase},
	{Name: "Redis", Category: skill.CategoryDatabase},
	{Name: "Docker", Category: skill.CategoryDevOps},
	{Name: "Kubernetes", Category: skill.CategoryDevOps},
	{Name: "Terraform", Category: skill.CategoryDevOps},
	{Name: "AWS", Category: skill.CategoryCloud},
	{Name: "GCP", Category: skill.CategoryCloud},
	{Name: "Azure", Category: skill.CategoryCloud},
	{Name: "Machine Learning", Category: skill.CategoryMachineLearning},
	{Name: "Project Management", Category: skill.CategoryProjectManagement},
}

func (TaxonomySeeder) Run(ctx context.Context, db database.DB) error {
	if err := EnsureTableColumns(ctx, db, "skills", "id", "name", "category", "created_at"); err != nil {
		return err
	}
	if err := EnsureTableColumns(ctx, db, "skill_aliases", "id", "skill_id", "alias"); err != nil {
		return err
	}

	tx, err := db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		_ = tx.Rollback(context.Background())
	}()

	for _, it := range starterSkills {
		if _, err := tx.Exec(
			ctx,
			`INSERT INTO skills (id, name, category) VALUES (gen_random_uuid(), $1, $2) ON CONFLICT (LOWER(name)) DO NOTHING`,
			it.Name,
			string(it.Category),
		); err != nil {
			return err
		}

		for _, alias := range taxonomy.SeedAliasesFor(it.Name) {
			if _, err := tx.Exec(
				ctx,
				`INSERT INTO skill_aliases (id, skill_id, alias)
				 SELECT gen_random_uuid(), s.id, $2 FROM skills s WHERE LOWER(s.name) = LOWER($1)
				 ON CONFLICT (LOWER(alias)) DO NOTHING`,
				it.Name,
				alias,
			); err != nil {
				return err
			}
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit: %w", err)
	}
	return nil
}

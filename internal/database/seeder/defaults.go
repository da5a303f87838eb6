package seeder

func Defaults() []Seeder {
	return []Seeder{
		TaxonomySeeder{},
	}
}

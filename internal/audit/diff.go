package audit

import "relocation_quest/internal/domain"

// DiffKeys returns the source keys whose slug is absent from target and the
// target keys whose slug is absent from source, each in input order. Only
// slugs are compared.
func DiffKeys(source, target []domain.ArticleKey) (missing, extra []domain.ArticleKey) {
	sourceSlugs := make(map[string]struct{}, len(source))
	for _, k := range source {
		sourceSlugs[k.Slug] = struct{}{}
	}
	targetSlugs := make(map[string]struct{}, len(target))
	for _, k := range target {
		targetSlugs[k.Slug] = struct{}{}
	}

	missing = []domain.ArticleKey{}
	for _, k := range source {
		if _, ok := targetSlugs[k.Slug]; !ok {
			missing = append(missing, k)
		}
	}

	extra = []domain.ArticleKey{}
	for _, k := range target {
		if _, ok := sourceSlugs[k.Slug]; !ok {
			extra = append(extra, k)
		}
	}

	return missing, extra
}

package related

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/dtnitsch/wp-migrate/internal/common"
	"github.com/dtnitsch/wp-migrate/pkg/manifest"
	relatedpkg "github.com/dtnitsch/wp-migrate/pkg/related"
)

// RelatedAction builds related-posts.json from the post taxonomy mapping
// written by the taxonomy command.
func RelatedAction(c *cli.Context) error {
	env, err := common.NewEnv(c)
	if err != nil {
		return common.Fail("failed to load config: %v", err)
	}
	cfg := env.Config

	mapping, err := manifest.LoadPostTaxonomies(env.Store, cfg.DataDir)
	if err != nil {
		env.Logger.Error("Failed to load post taxonomies", "error", err)
		return common.Fail("failed to load post taxonomies (run 'wp-migrate taxonomy' first): %v", err)
	}

	sets := relatedpkg.Build(env.Logger, env.Store, mapping.Posts, relatedpkg.Options{
		Dir:            cfg.BlogDir,
		Ext:            cfg.ContentExt(),
		Limit:          cfg.RelatedLimit,
		ExcerptLength:  cfg.ExcerptLength,
		DefaultExcerpt: cfg.DefaultExcerpt,
	})

	path, err := manifest.WriteRelated(env.Store, cfg.DataDir, sets, env.Now())
	if err != nil {
		return common.Fail("failed to write related posts: %v", err)
	}

	fmt.Printf("Generated %s: %d of %d posts have related posts\n", path, len(sets), len(mapping.Posts))
	return nil
}

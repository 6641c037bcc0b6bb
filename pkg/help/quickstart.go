package help

const QuickstartYAML = `# wp-migrate Quick Start

layout:
  export: "../wp-export/*.xml (newest wins, fallback ../wp-export/wordpress-export.xml)"
  posts: "content/blog/*.mdx"
  pages: "content/pages/*.mdx"
  data: "data/ (categories.json, tags.json, post-taxonomies.json, related-posts.json)"
  ledger: "data/wp-migrate.db"

commands:
  extract_taxonomy: |
    wp-migrate taxonomy

  verify_migration: |
    wp-migrate verify

  full_check: |
    # taxonomy, then verify, then confirm the data files exist
    wp-migrate check

  audit_content: |
    wp-migrate audit

  related_posts: |
    # needs data/post-taxonomies.json from 'wp-migrate taxonomy'
    wp-migrate related

  list_runs: |
    wp-migrate runs
    wp-migrate runs --limit 50

  run_details: |
    wp-migrate runs show 3f9c2a1b
    wp-migrate runs show   # latest run

  custom_layout: |
    wp-migrate --config site.yaml verify

key_files:
  - "migration-verification-report.json (missing, extra, errors, readiness)"
  - "url-verification-list.json (every migrated URL for link checking)"
  - "data/post-taxonomies.json (slug -> categories, tags)"

config_keys:
  export_dir: "Directory searched for the newest .xml export"
  fallback_export: "Export used when export_dir has no .xml file"
  blog_dir: "Migrated posts"
  pages_dir: "Migrated pages"
  content_pattern: "File name pattern for content files (doublestar)"
  data_dir: "Where taxonomy and related-post files are written"
  report_path: "Verification report"
  url_list_path: "URL verification list"
  ledger_path: "SQLite run ledger"
  blog_url_prefix: "URL prefix for posts"
  page_url_prefix: "URL prefix for pages"
  related_limit: "Related posts per post"
  excerpt_length: "Excerpt length in characters"
  default_excerpt: "Excerpt used when a post body cannot be read"

readiness:
  - "Original and migrated totals match"
  - "No published post or page is missing"
  - "No content file failed to read or parse"
  - "check also requires all three taxonomy data files"

exit_codes:
  "0": "Success, or migration ready"
  "1": "Fatal error, or migration not ready"

matching:
  - "A migrated file matches an export item by front matter slug, then file name, then title"
  - "Only published posts and pages with a title and slug are compared"
  - "Drafts never reach the taxonomy indexes"
`

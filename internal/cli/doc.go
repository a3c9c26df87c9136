// Package cli provides blogctl, the command-line front end of the blog core.
//
// Subcommands:
//   - migrate: apply the embedded schema migrations
//   - console: an interactive session over the business managers
//   - presign: issue a presigned upload URL for a post image or profile picture
//
// Every subcommand shares the configuration flags registered by
// config.BindFlags; values also come from a JSON file (--config) and the
// BLOG_* environment.
package cli

package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/fwojciec/htmlsitemap"
)

// Run executes the config add command.
func (c *ConfigAddCmd) Run(deps *Dependencies) error {
	inNav, err := parseInNavigation(c.InNavigation)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}

	cfg := &htmlsitemap.Config{
		MinDepth:     c.MinDepth,
		MaxDepth:     c.MaxDepth,
		InNavigation: inNav,
	}
	if err := deps.Configs.CreateConfig(deps.Ctx, cfg); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Created %s\n", cfg)
	printConfig(deps.Stdout, cfg)
	return nil
}

// Run executes the config list command.
func (c *ConfigListCmd) Run(deps *Dependencies) error {
	configs, err := deps.Configs.FindConfigs(deps.Ctx, htmlsitemap.ConfigFilter{Offset: c.Offset, Limit: c.Limit})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}

	if len(configs) == 0 {
		fmt.Fprintln(deps.Stdout, "No configs found. Use 'htmlsitemap config add' to create one.")
		return nil
	}

	for _, cfg := range configs {
		printConfig(deps.Stdout, cfg)
	}
	return nil
}

// Run executes the config show command.
func (c *ConfigShowCmd) Run(deps *Dependencies) error {
	cfg, err := deps.Configs.FindConfigByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, cfg)
	fmt.Fprintf(deps.Stdout, "  min depth:     %d\n", cfg.MinDepth)
	fmt.Fprintf(deps.Stdout, "  max depth:     %s\n", formatMaxDepth(cfg.MaxDepth))
	fmt.Fprintf(deps.Stdout, "  in navigation: %s\n", formatInNavigation(cfg.InNavigation))
	fmt.Fprintf(deps.Stdout, "  created:       %s\n", cfg.CreatedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(deps.Stdout, "  updated:       %s\n", cfg.UpdatedAt.Format("2006-01-02 15:04:05"))
	return nil
}

// Run executes the config update command.
func (c *ConfigUpdateCmd) Run(deps *Dependencies) error {
	upd := htmlsitemap.ConfigUpdate{
		MinDepth:      c.MinDepth,
		MaxDepth:      c.MaxDepth,
		ClearMaxDepth: c.Unbounded,
	}
	if c.InNavigation != "" {
		inNav, err := parseInNavigation(c.InNavigation)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
			return err
		}
		upd.InNavigation = inNav
		upd.ClearInNavigation = inNav == nil
	}

	cfg, err := deps.Configs.UpdateConfig(deps.Ctx, c.ID, upd)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Updated %s\n", cfg)
	printConfig(deps.Stdout, cfg)
	return nil
}

// Run executes the config delete command.
func (c *ConfigDeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return htmlsitemap.Errorf(htmlsitemap.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Configs.DeleteConfig(deps.Ctx, c.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", htmlsitemap.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted config %q\n", c.ID)
	return nil
}

// parseInNavigation converts a flag value into the optional navigation filter.
func parseInNavigation(s string) (*bool, error) {
	switch s {
	case "", "any":
		return nil, nil
	case "true", "false":
		v, _ := strconv.ParseBool(s)
		return &v, nil
	default:
		return nil, htmlsitemap.Errorf(htmlsitemap.EINVALID, "in-navigation must be true, false or any, got %q", s)
	}
}

func printConfig(w io.Writer, cfg *htmlsitemap.Config) {
	fmt.Fprintf(w, "%s  min=%d  max=%s  nav=%s\n", cfg.ID, cfg.MinDepth, formatMaxDepth(cfg.MaxDepth), formatInNavigation(cfg.InNavigation))
}

func formatMaxDepth(v *int) string {
	if v == nil {
		return "unbounded"
	}
	return strconv.Itoa(*v)
}

func formatInNavigation(v *bool) string {
	if v == nil {
		return "any"
	}
	return strconv.FormatBool(*v)
}

package main

import (
	"context"

	"github.com/pkg/errors"

	"github.com/persona-kit/persona/pkg/config"
	"github.com/persona-kit/persona/pkg/persona"
	"github.com/persona-kit/persona/pkg/skills"
)

// workspace bundles everything a command needs to resolve personas: the
// loaded persona table, the candidate skill universe, and the variable
// source assembled from config variables and the process environment.
type workspace struct {
	personas map[string]*persona.Persona
	lookup   persona.Lookup
	opts     persona.ResolveOptions
}

func loadWorkspace(ctx context.Context) (*workspace, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	var loaderOpts []persona.LoaderOption
	if len(cfg.PersonaDirs) > 0 {
		loaderOpts = append(loaderOpts, persona.WithPersonaDirs(cfg.PersonaDirs...))
	}
	loader, err := persona.NewLoader(loaderOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize persona loader")
	}

	personas, err := loader.LoadAll(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load personas")
	}

	var discoveryOpts []skills.Option
	if len(cfg.SkillDirs) > 0 {
		discoveryOpts = append(discoveryOpts, skills.WithSkillDirs(cfg.SkillDirs...))
	}
	discovery, err := skills.NewDiscovery(discoveryOpts...)
	if err != nil {
		return nil, errors.Wrap(err, "failed to initialize skill discovery")
	}

	candidates, err := discovery.Names()
	if err != nil {
		return nil, errors.Wrap(err, "failed to discover skills")
	}

	return &workspace{
		personas: personas,
		lookup:   persona.MapLookup(personas),
		opts: persona.ResolveOptions{
			Candidates: candidates,
			Variables: persona.ChainSource{
				persona.MapSource(cfg.Variables),
				persona.EnvSource{},
			},
		},
	}, nil
}

// names returns the loaded persona names; used when a command targets all
// personas.
func (w *workspace) names() []string {
	names := make([]string, 0, len(w.personas))
	for name := range w.personas {
		names = append(names, name)
	}
	return names
}

package cmd

import (
	"context"
	"log/slog"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/joho/godotenv"

	"github.com/ardnew/fee/expr"
	"github.com/ardnew/fee/log"
)

// Bindings collects the flags shared by all commands that bind variables
// before compiling expressions. Sources are applied in order — YAML file,
// dotenv file, then inline --set pairs — so later sources override earlier
// ones. All bindings are layered on top of the standard constants and
// functions.
type Bindings struct {
	Vars     string             `help:"YAML file of variable bindings."                              optional:""  type:"existingfile"`
	Env      string             `help:"dotenv file of variable bindings."                            optional:""  type:"existingfile"`
	Set      map[string]float64 `help:"Inline variable bindings (name=value)."                       short:"s"`
	Unlocked bool               `help:"Keep resolvers unlocked (resolve names on every evaluation)." negatable:""`
}

// Context builds the evaluation context from all binding sources.
//
// Unless --unlocked is given, the resolvers are locked so that compilation
// embeds direct value pointers and rejects unknown names up front.
func (b *Bindings) Context(ctx context.Context) (*expr.Context, error) {
	vars := expr.NewVarResolver()
	funcs := expr.NewFnResolver()

	if b.Vars != "" {
		if err := loadVarsFile(b.Vars, vars); err != nil {
			return nil, ErrReadVars.Wrap(err).
				With(slog.String("path", b.Vars))
		}
	}

	if b.Env != "" {
		if err := loadEnvFile(ctx, b.Env, vars); err != nil {
			return nil, ErrReadEnv.Wrap(err).
				With(slog.String("path", b.Env))
		}
	}

	for name, val := range b.Set {
		vars.Insert(name, val)
	}

	log.DebugContext(ctx, "bindings loaded",
		slog.Int("vars", vars.Len()),
		slog.Bool("locked", !b.Unlocked),
	)

	if b.Unlocked {
		return expr.NewContext(vars, funcs), nil
	}

	return expr.NewContext(vars.Lock(), funcs.Lock()), nil
}

// loadVarsFile reads a YAML mapping of names to numbers into the resolver.
func loadVarsFile(path string, vars *expr.MapResolver[float64]) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	var bound map[string]float64
	if err := yaml.Unmarshal(data, &bound); err != nil {
		return err
	}

	for name, val := range bound {
		vars.Insert(name, val)
	}

	return nil
}

// loadEnvFile reads a dotenv file into the resolver. Entries whose values
// do not parse as numbers are skipped with a warning.
func loadEnvFile(
	ctx context.Context,
	path string,
	vars *expr.MapResolver[float64],
) error {
	env, err := godotenv.Read(path)
	if err != nil {
		return err
	}

	for name, raw := range env {
		val, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			log.WarnContext(ctx, "skipping non-numeric env binding",
				slog.String("name", name),
				slog.String("value", raw),
			)

			continue
		}

		vars.Insert(name, val)
	}

	return nil
}

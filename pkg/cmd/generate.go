package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/yeisme/mockmoments/pkg/configs"
	"github.com/yeisme/mockmoments/pkg/internal/factory"
	"github.com/yeisme/mockmoments/pkg/internal/faker"
	"github.com/yeisme/mockmoments/pkg/internal/generator"
	"github.com/yeisme/mockmoments/pkg/internal/model"
	"github.com/yeisme/mockmoments/pkg/internal/notify"
	"github.com/yeisme/mockmoments/pkg/internal/sink"
	"github.com/yeisme/mockmoments/pkg/internal/storage"
	nlog "github.com/yeisme/mockmoments/pkg/log"
	"github.com/yeisme/mockmoments/pkg/metrics"
	"github.com/yeisme/mockmoments/pkg/tracing"
)

var generateCmd = &cobra.Command{
	Use:     "generate",
	Short:   "generate mock data into the output directory",
	Aliases: []string{"gen", "g"},
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		return generate(ctx, configs.GetConfig(), *nlog.Logger())
	},
}

// registerGenerateCommands 注册 generate 命令及其 flag，flag 绑定到 generate.* 配置键.
func registerGenerateCommands() {
	flags := generateCmd.Flags()
	flags.StringP("out", "o", configs.DefaultOutputDir, "output directory, created if missing")
	flags.IntP("users", "u", configs.DefaultUserCount, "number of users")
	flags.IntP("moments-max", "m", configs.DefaultMomentIterCountMax, "exclusive upper bound of moments per user")
	flags.String("null", configs.DefaultNullToken, "token written for missing values")
	flags.Int64("seed", 0, "random seed, 0 for a random run")
	flags.StringSlice("sink", []string{configs.DefaultSink}, "output targets: csv, db")

	rootCmd.AddCommand(generateCmd)
}

// generate 执行一次完整的生成：写出文件或数据库，写清单与指标，按需上传.
func generate(ctx context.Context, cfg *configs.AppConfig, logger zerolog.Logger) (err error) {
	if err := tracing.InitTracer(ctx, cfg.Tracing); err != nil {
		return err
	}

	defer func() {
		err = errors.Join(err, tracing.ShutdownTracer(context.WithoutCancel(ctx)))
	}()

	ctx, span := tracing.StartSpan(ctx, "generate")
	defer func() { tracing.EndSpan(span, err) }()

	gen := cfg.Generate

	if err := os.MkdirAll(gen.OutputDir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	p, err := faker.New(gen.Seed, gen.Locale)
	if err != nil {
		return err
	}

	mgr, err := storage.Init(ctx, cfg)
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, mgr.Close()) }()

	out, files, err := openSinks(ctx, cfg, mgr)
	if err != nil {
		return err
	}

	g := generator.New(p, generatorOptions(gen), logger.With().Str("component", "generator").Logger())

	runCtx, runSpan := tracing.StartSpan(ctx, "generator.run")
	stats, runErr := g.Run(runCtx, out, gen.UserCount, gen.MomentIterCountMax)
	runErr = errors.Join(runErr, out.Close())
	tracing.EndSpan(runSpan, runErr)

	rec := metrics.New(cfg.Metrics)
	for _, k := range model.Kinds() {
		rec.RecordRows(k.String(), stats.Counts[k])
	}

	rec.RecordRun(stats.Duration, runErr)

	if runErr != nil {
		writeMetrics(cfg, rec, logger)

		return runErr
	}

	manifest := generator.NewManifest(stats, configs.AppVersion, gen.UserCount, gen.MomentIterCountMax, gen.Seed, gen.NullToken)

	manifestPath, err := generator.WriteManifest(gen.OutputDir, manifest)
	if err != nil {
		return err
	}

	files = append(files, manifestPath)

	for _, k := range model.Kinds() {
		logger.Info().Str("kind", k.String()).Int64("rows", stats.Counts[k]).Msg("generated")
	}

	logger.Info().
		Str("run_id", stats.RunID).
		Str("output_dir", gen.OutputDir).
		Int64("rows", stats.Total()).
		Dur("duration", stats.Duration).
		Msg("generation completed")

	if mgr.S3 != nil {
		if err := upload(ctx, mgr, stats.RunID, files, logger); err != nil {
			return err
		}
	}

	if cfg.Notify.Enabled {
		if err := publishRun(ctx, cfg.Notify, manifest, logger); err != nil {
			return err
		}
	}

	writeMetrics(cfg, rec, logger)

	return nil
}

// openSinks 按 generate.sinks 打开输出目标，返回组合后的 Sink 与将要上传的文件.
func openSinks(ctx context.Context, cfg *configs.AppConfig, mgr *storage.Manager) (sink.Sink, []string, error) {
	var (
		sinks []sink.Sink
		files []string
	)

	if cfg.Generate.HasSink(configs.SinkCSV) {
		c, err := sink.OpenCSV(cfg.Generate.OutputDir, cfg.Generate.NullToken)
		if err != nil {
			return nil, nil, err
		}

		sinks = append(sinks, c)
		files = append(files, c.Files()...)
	}

	if mgr.DB != nil {
		d, err := sink.NewDB(ctx, mgr.DB.GetDB(), cfg.DB.BatchSize, cfg.DB.AutoMigrate)
		if err != nil {
			return nil, nil, errors.Join(err, sink.Multi(sinks...).Close())
		}

		sinks = append(sinks, d)
	}

	return sink.Multi(sinks...), files, nil
}

func generatorOptions(gen configs.GenerateConfig) generator.Options {
	return generator.Options{
		Options: factory.Options{
			DeleteProbability: gen.DeleteProbability,
			ImageProbability:  gen.ImageProbability,
			MomentMinAge:      gen.MomentMinAge,
			MomentMaxAge:      gen.MomentMaxAge,
		},
		Tags:                gen.Tags,
		CommentIterCountMax: gen.CommentIterCountMax,
	}
}

func upload(ctx context.Context, mgr *storage.Manager, runID string, files []string, logger zerolog.Logger) (err error) {
	ctx, span := tracing.StartSpan(ctx, "s3.upload")
	defer func() { tracing.EndSpan(span, err) }()

	objects, err := mgr.S3.UploadRun(ctx, runID, files)
	if err != nil {
		return err
	}

	logger.Info().
		Str("bucket", mgr.S3.Config().BucketName).
		Str("prefix", path.Dir(objects[0].Key)).
		Int("objects", len(objects)).
		Msg("uploaded")

	return nil
}

func publishRun(ctx context.Context, cfg configs.NotifyConfig, m generator.Manifest, logger zerolog.Logger) (err error) {
	ctx, span := tracing.StartSpan(ctx, "notify.publish")
	defer func() { tracing.EndSpan(span, err) }()

	n, err := notify.New(ctx, cfg, logger.With().Str("component", "notify").Logger())
	if err != nil {
		return err
	}

	defer func() { err = errors.Join(err, n.Close()) }()

	return n.PublishRun(ctx, m)
}

// writeMetrics 指标写出失败不影响本次运行结果.
func writeMetrics(cfg *configs.AppConfig, rec *metrics.Recorder, logger zerolog.Logger) {
	if !cfg.Metrics.Enabled {
		return
	}

	if err := rec.WriteTextfile(cfg.Metrics.TextfilePath); err != nil {
		logger.Warn().Err(err).Msg("failed to write metrics")

		return
	}

	logger.Debug().Str("path", cfg.Metrics.TextfilePath).Msg("metrics written")
}

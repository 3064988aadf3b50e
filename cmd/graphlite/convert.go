package main

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/born-ml/graphlite/graphlite"
	"github.com/born-ml/graphlite/internal/modelfile"
)

func newConvertCmd(a *app) *cobra.Command {
	var (
		output       string
		name         string
		modelVersion string
	)
	cmd := &cobra.Command{
		Use:   "convert <model.tflite> -o <model.glm>",
		Short: "Convert a TFLite model into a graphlite model file",
		Long: `Convert translates every operator of a TFLite flatbuffer through the
builtin parser registry and writes the result as a graphlite container.
Output paths ending in .xz are compressed.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			//nolint:gosec // G304: input path is the command argument
			data, err := os.ReadFile(args[0])
			if err != nil {
				return errors.Wrap(err, "reading input")
			}

			opts := graphlite.DefaultConvertOptions()
			opts.Format = a.cfg.Convert.Format
			opts.StrictMode = a.cfg.Convert.Strict
			opts.Name = name
			opts.Version = modelVersion
			opts.Logger = a.log
			m, err := graphlite.Convert(data, opts)
			if err != nil {
				return errors.Wrapf(err, "converting %s", args[0])
			}

			err = modelfile.Save(output, m, modelfile.Options{
				MaxSize:  a.cfg.Import.MaxModelSize,
				Compress: a.cfg.Output.Compress,
				Logger:   a.log,
			})
			if err != nil {
				return err
			}
			a.log.WithFields(log.Fields{"input": args[0], "output": output}).Debug("conversion written")
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %d nodes, %d tensors, %d subgraphs -> %s\n",
				green("converted"), args[0], m.NumNodes(), m.NumTensors(), m.NumSubgraphs(), output)
			return nil
		},
	}

	f := cmd.Flags()
	f.StringVarP(&output, "output", "o", "", "output model file")
	f.StringVar(&name, "name", "", "model name (default: the TFLite description)")
	f.StringVar(&modelVersion, "model-version", "", "model version label")
	f.String("format", "NHWC", "default tensor layout [NCHW, NHWC, NC, HW, KHWC]")
	f.Bool("strict", true, "fail on unsupported operators instead of skipping them")
	f.Bool("compress", false, "xz compress the output regardless of its extension")
	_ = cmd.MarkFlagRequired("output")
	return cmd
}

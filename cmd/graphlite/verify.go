package main

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/born-ml/graphlite/internal/modelfile"
	"github.com/born-ml/graphlite/internal/parallel"
)

type verifyResult struct {
	path   string
	digest [32]byte
	err    error
}

func newVerifyCmd(a *app) *cobra.Command {
	var expect string
	cmd := &cobra.Command{
		Use:   "verify <model.glm>... [--digest <blake3>]",
		Short: "Import model files and report their BLAKE3 digests",
		Long: `Verify fully imports every file, which validates the container and
reconstructs the graph, then prints the digest of the stored container.
With --digest the single given file must also match the expected digest.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var want [32]byte
			if expect != "" {
				if len(args) != 1 {
					return errors.New("--digest needs exactly one file")
				}
				b, err := hex.DecodeString(expect)
				if err != nil || len(b) != len(want) {
					return errors.Errorf("--digest %q is not a 64 digit hex digest", expect)
				}
				copy(want[:], b)
			}

			opts := modelfile.Options{MaxSize: a.cfg.Import.MaxModelSize, Logger: a.log}
			cfg := parallel.Config{Enabled: a.cfg.Verify.Workers > 1, NumWorkers: a.cfg.Verify.Workers}
			results, err := parallel.Map(cmd.Context(), len(args), func(_ context.Context, i int) (verifyResult, error) {
				res := verifyResult{path: args[i]}
				m, err := modelfile.Load(args[i], opts)
				if err != nil {
					res.err = err
					return res, nil
				}
				res.digest = m.Digest()
				if expect != "" && res.digest != want {
					res.err = errors.Wrapf(modelfile.ErrDigestMismatch, "want %s", expect)
				}
				return res, nil
			}, cfg)
			if err != nil {
				return err
			}

			failed := 0
			for _, res := range results {
				if res.err != nil {
					failed++
					fmt.Fprintf(cmd.OutOrStdout(), "%s %s: %v\n", red("FAIL"), res.path, res.err)
					continue
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n", green("OK"), hex.EncodeToString(res.digest[:]), res.path)
			}
			if failed > 0 {
				return errors.Errorf("%d of %d files failed verification", failed, len(results))
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&expect, "digest", "", "expected BLAKE3 digest in hex")
	cmd.Flags().Int("workers", 0, "files verified concurrently")
	return cmd
}

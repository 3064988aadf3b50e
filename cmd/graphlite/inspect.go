package main

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/born-ml/graphlite/internal/model"
	"github.com/born-ml/graphlite/internal/modelfile"
)

type report struct {
	Name      string           `yaml:"name"`
	Version   string           `yaml:"version,omitempty"`
	Framework string           `yaml:"framework"`
	Bytes     int              `yaml:"bytes"`
	Digest    string           `yaml:"digest"`
	Inputs    []int            `yaml:"inputs,flow"`
	Outputs   []int            `yaml:"outputs,flow"`
	Tensors   []tensorReport   `yaml:"tensors"`
	Nodes     []nodeReport     `yaml:"nodes"`
	Subgraphs []subgraphReport `yaml:"subgraphs"`
}

type tensorReport struct {
	Index    int     `yaml:"index"`
	Name     string  `yaml:"name,omitempty"`
	Shape    []int32 `yaml:"shape,flow"`
	Type     string  `yaml:"type"`
	Format   string  `yaml:"format"`
	Category string  `yaml:"category"`
	Bytes    int     `yaml:"bytes,omitempty"`
}

type nodeReport struct {
	Index   int    `yaml:"index"`
	Name    string `yaml:"name"`
	Type    string `yaml:"type"`
	Inputs  []int  `yaml:"inputs,flow"`
	Outputs []int  `yaml:"outputs,flow"`
}

type subgraphReport struct {
	Index   int    `yaml:"index"`
	Name    string `yaml:"name"`
	Nodes   []int  `yaml:"nodes,flow"`
	Inputs  []int  `yaml:"inputs,flow"`
	Outputs []int  `yaml:"outputs,flow"`
}

func newReport(m *model.Model) report {
	digest := m.Digest()
	r := report{
		Name:      m.Name(),
		Version:   m.Version(),
		Framework: m.FmkType().String(),
		Bytes:     m.Size(),
		Digest:    hex.EncodeToString(digest[:]),
		Inputs:    m.Inputs(),
		Outputs:   m.Outputs(),
	}
	for _, t := range m.Tensors() {
		r.Tensors = append(r.Tensors, tensorReport{
			Index:    t.Index,
			Name:     t.Name,
			Shape:    t.Shape,
			Type:     t.DataType.String(),
			Format:   t.Format.String(),
			Category: t.Category.String(),
			Bytes:    len(m.TensorData(t.Index)),
		})
	}
	for _, n := range m.Nodes() {
		r.Nodes = append(r.Nodes, nodeReport{
			Index:   n.Index,
			Name:    n.Name,
			Type:    n.Type.String(),
			Inputs:  n.Inputs,
			Outputs: n.Outputs,
		})
	}
	for _, sg := range m.Subgraphs() {
		r.Subgraphs = append(r.Subgraphs, subgraphReport{
			Index:   sg.Index,
			Name:    sg.Name,
			Nodes:   sg.Nodes,
			Inputs:  sg.Inputs,
			Outputs: sg.Outputs,
		})
	}
	return r
}

func writeText(out io.Writer, r report) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(w, "model\t%s %s\n", r.Name, r.Version)
	fmt.Fprintf(w, "framework\t%s\n", r.Framework)
	fmt.Fprintf(w, "size\t%d bytes\n", r.Bytes)
	fmt.Fprintf(w, "digest\t%s\n", r.Digest)
	fmt.Fprintf(w, "inputs\t%v\n", r.Inputs)
	fmt.Fprintf(w, "outputs\t%v\n", r.Outputs)

	fmt.Fprintf(w, "\nTENSOR\tNAME\tSHAPE\tTYPE\tFORMAT\tCATEGORY\tDATA\n")
	for _, t := range r.Tensors {
		fmt.Fprintf(w, "%d\t%s\t%v\t%s\t%s\t%s\t%d\n", t.Index, t.Name, t.Shape, t.Type, t.Format, t.Category, t.Bytes)
	}
	fmt.Fprintf(w, "\nNODE\tNAME\tTYPE\tINPUTS\tOUTPUTS\n")
	for _, n := range r.Nodes {
		fmt.Fprintf(w, "%d\t%s\t%s\t%v\t%v\n", n.Index, n.Name, n.Type, n.Inputs, n.Outputs)
	}
	fmt.Fprintf(w, "\nSUBGRAPH\tNAME\tNODES\tINPUTS\tOUTPUTS\n")
	for _, sg := range r.Subgraphs {
		fmt.Fprintf(w, "%d\t%s\t%v\t%v\t%v\n", sg.Index, sg.Name, sg.Nodes, sg.Inputs, sg.Outputs)
	}
	return w.Flush()
}

func newInspectCmd(a *app) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "inspect <model.glm> [-o text|yaml]",
		Short: "Print the tensors, nodes and subgraphs of a model file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m, err := modelfile.Load(args[0], modelfile.Options{
				MaxSize: a.cfg.Import.MaxModelSize,
				Logger:  a.log,
			})
			if err != nil {
				return err
			}
			r := newReport(m)

			switch strings.ToLower(output) {
			case "text":
				return writeText(cmd.OutOrStdout(), r)
			case "yaml":
				enc := yaml.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent(2)
				if err := enc.Encode(r); err != nil {
					return errors.Wrap(err, "encoding yaml")
				}
				return enc.Close()
			default:
				return errors.Errorf("unknown output format %q", output)
			}
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "text", "output format [text, yaml]")
	return cmd
}

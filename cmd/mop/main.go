package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/mopbucket/mop/pkg/dataset"
	csvio "github.com/mopbucket/mop/pkg/io/csvio"
	jsonlio "github.com/mopbucket/mop/pkg/io/jsonlio"
	parquetio "github.com/mopbucket/mop/pkg/io/parquetio"
	m "github.com/mopbucket/mop/pkg/mop"
	"github.com/mopbucket/mop/pkg/profile"
	"github.com/mopbucket/mop/pkg/transform/dates"
	"github.com/mopbucket/mop/pkg/transform/nulls"
	"github.com/mopbucket/mop/pkg/transform/quantity"
	"github.com/mopbucket/mop/pkg/transform/scrub"
	"github.com/mopbucket/mop/pkg/transform/shape"
	"github.com/mopbucket/mop/pkg/transform/validrows"
)

var (
	version = "0.1.0-dev"

	// assigned by the yaml/toml build-tag files; nil means the binary was
	// built without that config format
	yamlUnmarshal func([]byte, any) error
	tomlUnmarshal func([]byte, any) error
)

type Config struct {
	Input struct {
		Path      string `json:"path" yaml:"path" toml:"path"`
		Type      string `json:"type" yaml:"type" toml:"type"` // csv|jsonl|parquet|datejson (default csv)
		HasHeader bool   `json:"has_header" yaml:"has_header" toml:"has_header"`
		Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	} `json:"input" yaml:"input" toml:"input"`
	Output struct {
		Path      string `json:"path" yaml:"path" toml:"path"`
		Type      string `json:"type" yaml:"type" toml:"type"` // csv|jsonl|parquet (default csv)
		Delimiter string `json:"delimiter" yaml:"delimiter" toml:"delimiter"`
	} `json:"output" yaml:"output" toml:"output"`
	// Dataset selects a built-in cleaning pipeline (user, card, store,
	// product, order, date-event). Steps are appended after it.
	Dataset string            `json:"dataset" yaml:"dataset" toml:"dataset"`
	Steps   []json.RawMessage `json:"steps" yaml:"-" toml:"-"`
}

func main() {
	showVersion := flag.Bool("version", false, "Print version and exit")
	configPath := flag.String("config", "", "Path to cleaning config (JSON; YAML/TOML with build tags)")
	chunkSize := flag.Int("chunk-size", 0, "Enable streaming with chunk size (rows per chunk). 0 disables streaming.")
	doProfile := flag.Bool("profile", false, "Print a column summary of the cleaned output")
	flag.Parse()

	if *showVersion {
		fmt.Println("mop", version)
		return
	}

	if *configPath == "" {
		fmt.Fprintln(os.Stderr, "no config provided; nothing to do. try --config <file> or --version")
		os.Exit(2)
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fatal(err)
	}

	p, err := buildPipeline(cfg)
	if err != nil {
		fatal(err)
	}

	var report m.Report
	var coll *profile.Collector
	topK := 5

	useStream := *chunkSize > 0 && cfg.Input.Type != "datejson"
	if useStream {
		src, closer, err := openStreamSource(cfg, *chunkSize)
		if err != nil {
			fatal(err)
		}
		defer func() { _ = closer.Close() }()
		sink, err := openStreamSink(cfg)
		if err != nil {
			fatal(err)
		}
		if *doProfile {
			ps := &profilingSink{inner: sink, topK: topK}
			report, err = m.RunStream(context.Background(), p, src, ps)
			coll = ps.coll
		} else {
			report, err = m.RunStream(context.Background(), p, src, sink)
		}
		if err != nil {
			fatal(err)
		}
	} else {
		frame, err := readAll(cfg)
		if err != nil {
			fatal(err)
		}
		out, rep, err := p.Run(context.Background(), frame)
		if err != nil {
			fatal(err)
		}
		report = rep
		if *doProfile {
			coll = profile.NewCollector(out.Schema(), topK)
			coll.ConsumeFrame(out)
		}
		if err := writeAll(cfg, out); err != nil {
			fatal(err)
		}
	}

	printReport(report)
	if coll != nil {
		fmt.Fprint(os.Stderr, coll.ReportText())
	}
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}

func loadConfig(path string) (Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	var cfg Config
	switch {
	case strings.HasSuffix(path, ".yaml"), strings.HasSuffix(path, ".yml"):
		if yamlUnmarshal == nil {
			return Config{}, fmt.Errorf("yaml config requires a build with -tags yaml")
		}
		err = yamlUnmarshal(b, &cfg)
	case strings.HasSuffix(path, ".toml"):
		if tomlUnmarshal == nil {
			return Config{}, fmt.Errorf("toml config requires a build with -tags toml")
		}
		err = tomlUnmarshal(b, &cfg)
	default:
		err = json.Unmarshal(b, &cfg)
	}
	if err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

func buildPipeline(cfg Config) (*m.Pipeline, error) {
	p := m.NewPipeline()
	if cfg.Dataset != "" {
		t, err := dataset.ParseType(cfg.Dataset)
		if err != nil {
			return nil, err
		}
		p, err = dataset.Build(t)
		if err != nil {
			return nil, err
		}
	}
	for _, raw := range cfg.Steps {
		// detect each step by its single key
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(raw, &probe); err != nil {
			return nil, err
		}
		for k, v := range probe {
			switch k {
			case "standardize_nulls":
				var s struct {
					Columns   []string `json:"columns"`
					Sentinels []string `json:"sentinels"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&nulls.Standardize{Columns: s.Columns, Sentinels: s.Sentinels})
			case "normalize_dates":
				var s struct {
					Columns []string `json:"columns"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&dates.Normalize{Columns: s.Columns})
			case "normalize_weight":
				var s struct {
					Column string `json:"column"`
					Out    string `json:"out"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&quantity.NormalizeWeight{Column: s.Column, Out: s.Out})
			case "drop_corrupt_rows":
				var s struct {
					KeyColumn   string `json:"key_column"`
					ExemptValue string `json:"exempt_value"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&validrows.Filter{KeyColumn: s.KeyColumn, ExemptValue: s.ExemptValue})
			case "drop_missing":
				var s struct {
					Columns []string `json:"columns"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&validrows.DropMissing{Columns: s.Columns})
			case "clean_address":
				var s struct {
					Column string `json:"column"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&scrub.Address{Column: s.Column})
			case "clean_phone":
				var s struct {
					Column string `json:"column"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&scrub.Phone{Column: s.Column})
			case "strip_marks":
				var s struct {
					Column string   `json:"column"`
					Marks  []string `json:"marks"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&scrub.StripMarks{Column: s.Column, Marks: s.Marks})
			case "drop_columns":
				var s struct {
					Columns []string `json:"columns"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&shape.Drop{Columns: s.Columns})
			case "rename_column":
				var s struct {
					From string `json:"from"`
					To   string `json:"to"`
				}
				_ = json.Unmarshal(v, &s)
				p.Add(&shape.Rename{From: s.From, To: s.To})
			case "numeric_cast":
				var s struct {
					Column string `json:"column"`
					To     string `json:"to"` // float|int
				}
				_ = json.Unmarshal(v, &s)
				to := m.KindFloat
				if s.To == "int" {
					to = m.KindInt
				}
				p.Add(&shape.NumericCast{Column: s.Column, To: to})
			default:
				fmt.Fprintf(os.Stderr, "warning: unknown step %q ignored\n", k)
			}
		}
	}
	return p, nil
}

func readAll(cfg Config) (*m.Frame, error) {
	switch cfg.Input.Type {
	case "", "csv":
		rdr, closer, err := csvio.Open(cfg.Input.Path, csvio.ReaderOptions{HasHeader: cfg.Input.HasHeader, Delimiter: inputDelim(cfg), SampleRows: 100})
		if err != nil {
			return nil, err
		}
		defer func() { _ = closer.Close() }()
		schema, _, err := rdr.InferSchema()
		if err != nil {
			return nil, err
		}
		return rdr.ReadAll(schema)
	case "jsonl":
		jr, jf, err := jsonlio.Open(cfg.Input.Path, jsonlio.ReaderOptions{SampleRows: 100})
		if err != nil {
			return nil, err
		}
		defer func() { _ = jf.Close() }()
		schema, err := jr.InferSchema()
		if err != nil {
			return nil, err
		}
		return jr.ReadAll(schema)
	case "parquet":
		pr, err := parquetio.OpenReader(cfg.Input.Path, 100)
		if err != nil {
			return nil, err
		}
		defer func() { _ = pr.Close() }()
		return pr.ReadAll()
	case "datejson":
		b, err := os.ReadFile(cfg.Input.Path)
		if err != nil {
			return nil, err
		}
		return dataset.FrameFromKeyIndexedJSON(b)
	default:
		return nil, fmt.Errorf("unsupported input type %q", cfg.Input.Type)
	}
}

func writeAll(cfg Config, f *m.Frame) error {
	switch cfg.Output.Type {
	case "", "csv":
		return csvio.WriteAll(cfg.Output.Path, f, csvio.WriterOptions{Delimiter: outputDelim(cfg)})
	case "jsonl":
		return jsonlio.WriteAll(cfg.Output.Path, f)
	case "parquet":
		return parquetio.WriteAll(cfg.Output.Path, f)
	default:
		return fmt.Errorf("unsupported output type %q", cfg.Output.Type)
	}
}

func openStreamSource(cfg Config, chunkSize int) (m.ChunkSource, interface{ Close() error }, error) {
	switch cfg.Input.Type {
	case "", "csv":
		sr, closer, err := csvio.NewStreamReader(cfg.Input.Path, csvio.ReaderOptions{HasHeader: cfg.Input.HasHeader, Delimiter: inputDelim(cfg), SampleRows: 100}, chunkSize)
		if err != nil {
			return nil, nil, err
		}
		return sr, closer, nil
	case "jsonl":
		sr, file, err := jsonlio.NewStreamReader(cfg.Input.Path, chunkSize)
		if err != nil {
			return nil, nil, err
		}
		return sr, file, nil
	case "parquet":
		sr, err := parquetio.NewStreamReader(cfg.Input.Path, chunkSize, 100)
		if err != nil {
			return nil, nil, err
		}
		return sr, sr, nil
	default:
		return nil, nil, fmt.Errorf("unsupported input type %q for streaming", cfg.Input.Type)
	}
}

func openStreamSink(cfg Config) (m.ChunkSink, error) {
	switch cfg.Output.Type {
	case "", "csv":
		return csvio.NewStreamWriter(cfg.Output.Path, csvio.WriterOptions{Delimiter: outputDelim(cfg)})
	case "jsonl":
		return jsonlio.NewStreamWriter(cfg.Output.Path)
	case "parquet":
		return parquetio.NewStreamWriter(cfg.Output.Path)
	default:
		return nil, fmt.Errorf("unsupported output type %q for streaming", cfg.Output.Type)
	}
}

func inputDelim(cfg Config) rune {
	if cfg.Input.Delimiter != "" {
		return rune(cfg.Input.Delimiter[0])
	}
	return ','
}

func outputDelim(cfg Config) rune {
	if cfg.Output.Delimiter != "" {
		return rune(cfg.Output.Delimiter[0])
	}
	return ','
}

func printReport(rep m.Report) {
	for _, st := range rep.Stages {
		if st.RowsIn != st.RowsOut {
			fmt.Fprintf(os.Stderr, "stage %s: %d -> %d rows\n", st.Stage, st.RowsIn, st.RowsOut)
		}
	}
	fmt.Fprintf(os.Stderr, "rows dropped: %d\n", rep.RowsDropped())
}

// profilingSink folds every frame into a collector before handing it to
// the real sink. The collector is created from the first frame's schema,
// which is the post-pipeline schema.
type profilingSink struct {
	inner m.ChunkSink
	coll  *profile.Collector
	topK  int
}

func (s *profilingSink) Write(f *m.Frame) error {
	if s.coll == nil {
		s.coll = profile.NewCollector(f.Schema(), s.topK)
	}
	s.coll.ConsumeFrame(f)
	return s.inner.Write(f)
}

func (s *profilingSink) Close() error { return s.inner.Close() }

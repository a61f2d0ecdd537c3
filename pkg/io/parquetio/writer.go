package parquetio

import (
	"encoding/json"
	"fmt"

	local "github.com/xitongsys/parquet-go-source/local"
	pw "github.com/xitongsys/parquet-go/writer"

	m "github.com/mopbucket/mop/pkg/mop"
)

const timeLayout = "2006-01-02T15:04:05Z07:00"

func parquetSchemaJSON(s m.Schema) string {
	type field struct {
		Tag string `json:"Tag"`
	}
	type schema struct {
		Tag    string  `json:"Tag"`
		Fields []field `json:"Fields"`
	}
	sc := schema{Tag: "name=schema, repetitiontype=REQUIRED"}
	for _, cs := range s.Columns {
		tag := "name=" + cs.Name + ", repetitiontype=OPTIONAL, type="
		switch cs.Type {
		case m.KindFloat:
			tag += "DOUBLE"
		case m.KindInt:
			tag += "INT64"
		case m.KindBool:
			tag += "BOOLEAN"
		default:
			// strings and times travel as UTF8 text
			tag += "BYTE_ARRAY, convertedtype=UTF8"
		}
		sc.Fields = append(sc.Fields, field{Tag: tag})
	}
	b, _ := json.Marshal(sc)
	return string(b)
}

// WriteAll writes a Frame to a Parquet file (the warehouse-friendly sink
// for cleaned tables).
func WriteAll(path string, f *m.Frame) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	writer, err := pw.NewJSONWriter(parquetSchemaJSON(f.Schema()), fw, 4)
	if err != nil {
		_ = fw.Close()
		return fmt.Errorf("parquet writer init: %w", err)
	}
	defer func() { _ = writer.WriteStop(); _ = fw.Close() }()
	for r := 0; r < f.Rows(); r++ {
		rec := make(map[string]any, len(f.Schema().Columns))
		for _, cs := range f.Schema().Columns {
			col, _ := f.ColumnByName(cs.Name)
			switch cs.Type {
			case m.KindFloat:
				if v, ok := col.(*m.FloatColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case m.KindInt:
				if v, ok := col.(*m.IntColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case m.KindBool:
				if v, ok := col.(*m.BoolColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case m.KindString:
				if v, ok := col.(*m.StringColumn).Get(r); ok {
					rec[cs.Name] = v
				}
			case m.KindTime:
				if v, ok := col.(*m.TimeColumn).Get(r); ok {
					rec[cs.Name] = v.Format(timeLayout)
				}
			}
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("parquet write row: %w", err)
		}
	}
	return nil
}

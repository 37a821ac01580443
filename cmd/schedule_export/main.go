package main

import (
	"bytes"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/Freeeeeet/stankin_schedule/internal/codec"
	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/stankin_schedule/internal/ical"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
	"github.com/Freeeeeet/stankin_schedule/internal/render"
	"github.com/Freeeeeet/stankin_schedule/internal/table"
)

// Офлайн конвертер JSON расписания в картинку, CSV или iCalendar.
//
//	schedule_export -in ИДБ-23-01.json -format png -week 2024-09-09 -out week.png
func main() {
	in := flag.String("in", "", "JSON файл расписания")
	out := flag.String("out", "", "файл результата (по умолчанию рядом с -in)")
	name := flag.String("name", "", "название расписания (по умолчанию имя файла)")
	format := flag.String("format", "png", "png, csv, pairs.csv или ics")
	week := flag.String("week", "", "неделя для png/csv в формате 2006-01-02 (по умолчанию весь семестр)")
	tz := flag.String("tz", "Europe/Moscow", "часовой пояс для ics")
	flag.Parse()

	if *in == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*in, *out, *name, *format, *week, *tz); err != nil {
		fmt.Fprintf(os.Stderr, "❌ %v\n", err)
		os.Exit(1)
	}
}

func run(in, out, name, format, week, tz string) error {
	if name == "" {
		name = strings.TrimSuffix(filepath.Base(in), filepath.Ext(in))
	}
	if out == "" {
		out = strings.TrimSuffix(in, filepath.Ext(in)) + "." + format
	}

	f, err := os.Open(in)
	if err != nil {
		return err
	}
	defer f.Close()

	schedule, err := codec.DecodeSchedule(name, f)
	if err != nil {
		return fmt.Errorf("read schedule: %w", err)
	}

	t := table.NewFull(schedule)
	if week != "" {
		date, err := model.ParseDate(week)
		if err != nil {
			return err
		}
		t = table.NewWeekly(schedule, date)
	}

	var data []byte
	switch format {
	case "png":
		data, err = render.TableImage(t, formatting.FormatCell)
	case "csv":
		var buf bytes.Buffer
		err = codec.WriteCSV(&buf, t, formatting.FormatCell)
		data = buf.Bytes()
	case "pairs.csv":
		var buf bytes.Buffer
		err = codec.WritePairsCSV(&buf, schedule.Pairs())
		data = buf.Bytes()
	case "ics":
		var loc *time.Location
		if loc, err = time.LoadLocation(tz); err == nil {
			var calendar string
			calendar, err = ical.Export(schedule, loc)
			data = []byte(calendar)
		}
	default:
		return fmt.Errorf("unknown format %q", format)
	}
	if err != nil {
		return err
	}

	if err := os.WriteFile(out, data, 0o644); err != nil {
		return err
	}
	fmt.Printf("✅ %s: %d %s -> %s\n", schedule.Info.Name, len(schedule.Pairs()), formatting.PluralizePairs(len(schedule.Pairs())), out)
	return nil
}

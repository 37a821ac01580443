package handlers

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/stankin_schedule/internal/controller/callbacks/common/formatting"
	"github.com/Freeeeeet/stankin_schedule/internal/model"
)

var (
	errSubgroupArg = errors.New("unknown subgroup argument")
	errDateArg     = errors.New("unknown date argument")
	errPairIDArg   = errors.New("invalid pair id argument")
)

// commandArgs текст после команды: "/use@stankin_bot ИДБ-23-01" -> "ИДБ-23-01"
func commandArgs(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "/") {
		return text
	}
	idx := strings.IndexAny(text, " \n\t")
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(text[idx+1:])
}

// parseSubgroupArg понимает A, B, а, б и all
func parseSubgroupArg(arg string) (model.Subgroup, error) {
	switch strings.ToLower(strings.TrimSpace(arg)) {
	case "a", "а":
		return model.SubgroupA, nil
	case "b", "б":
		return model.SubgroupB, nil
	case "all", "common", "все", "вся":
		return model.SubgroupCommon, nil
	default:
		return 0, errSubgroupArg
	}
}

// parseDateArg дата из аргумента команды. Пустой аргумент означает fallback.
func parseDateArg(arg string, fallback time.Time) (time.Time, error) {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return fallback, nil
	}
	date, err := formatting.ParseDate(arg)
	if err != nil {
		return time.Time{}, errDateArg
	}
	return date, nil
}

// parsePairArgs id пары и остаток: "#12 {...}" -> 12, "{...}"
func parsePairArgs(args string) (int64, string, error) {
	args = strings.TrimSpace(args)
	head, rest := args, ""
	if idx := strings.IndexAny(args, " \n\t"); idx >= 0 {
		head, rest = args[:idx], strings.TrimSpace(args[idx+1:])
	}

	id, err := strconv.ParseInt(strings.TrimPrefix(head, "#"), 10, 64)
	if err != nil || id <= 0 {
		return 0, "", errPairIDArg
	}
	return id, rest, nil
}

// importName название расписания для импорта: из /import, из подписи или из имени файла
func importName(pending, caption, filename string) string {
	if name := strings.TrimSpace(pending); name != "" {
		return name
	}
	if name := strings.TrimSpace(caption); name != "" {
		return name
	}
	name := strings.TrimSpace(filename)
	if strings.HasSuffix(strings.ToLower(name), ".json") {
		name = name[:len(name)-len(".json")]
	}
	return strings.TrimSpace(name)
}

// isJSONDocument проверяет расширение или MIME тип файла
func isJSONDocument(filename, mimeType string) bool {
	return strings.HasSuffix(strings.ToLower(filename), ".json") || mimeType == "application/json"
}

package engine

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	"github.com/roach88/liz/internal/shortcut"
	"github.com/roach88/liz/internal/store"
)

// DefaultHistoryLimit is used when history is called without a limit.
const DefaultHistoryLimit = 20

type decoder func(args []string) (Request, error)

var decoders = map[string]decoder{
	"list":          decodeList,
	"detail":        decodeDetail,
	"create":        decodeCreate,
	"update":        decodeUpdate,
	"delete":        decodeDelete,
	"import":        decodeImport,
	"export":        decodeExport,
	"execute":       decodeExecute,
	"persist":       func([]string) (Request, error) { return Persist{}, nil },
	"info":          func([]string) (Request, error) { return Info{}, nil },
	"new-id":        func([]string) (Request, error) { return NewID{}, nil },
	"reload":        decodeReload,
	"clear-deleted": func([]string) (Request, error) { return ClearDeleted{}, nil },
	"sort":          decodeSort,
	"history":       decodeHistory,
}

// aliases maps legacy wire names onto canonical actions.
var aliases = map[string]string{
	"get_shortcuts":    "list",
	"create_shortcuts": "create",
	"update_shortcuts": "update",
	"delete_shortcuts": "delete",
	"import_shortcuts": "import",
	"export_shortcuts": "export",
}

// Actions returns the canonical action names.
func Actions() []string {
	return []string{
		"list", "detail", "create", "update", "delete", "import", "export",
		"execute", "persist", "info", "new-id", "reload", "clear-deleted",
		"sort", "history",
	}
}

// Decode validates a wire command and turns it into a typed Request.
// Every error it returns is an *ArgError.
func Decode(cmd Command) (Request, error) {
	name := strings.TrimSpace(cmd.Action)
	if canonical, ok := aliases[name]; ok {
		name = canonical
	}
	dec, ok := decoders[name]
	if !ok {
		return nil, &ArgError{
			Code:    ErrCodeUnknownAction,
			Action:  cmd.Action,
			Message: "unknown action",
			Arg:     cmd.Action,
		}
	}
	return dec(cmd.Args)
}

func decodeList(args []string) (Request, error) {
	return List{Query: strings.TrimSpace(strings.Join(args, " "))}, nil
}

func decodeDetail(args []string) (Request, error) {
	if len(args) == 0 {
		return nil, missingArg("detail", "an id")
	}
	id, err := shortcut.ParseID(args[0])
	if err != nil {
		return nil, badID("detail", args[0], err)
	}
	scope := store.ScopeActive
	if len(args) > 1 {
		if scope, err = store.ParseScope(args[1]); err != nil {
			return nil, &ArgError{Code: ErrCodeBadValue, Action: "detail", Message: "bad scope", Arg: args[1], Err: err}
		}
	}
	return Detail{ID: id, Scope: scope}, nil
}

func decodeCreate(args []string) (Request, error) {
	list, err := decodeShortcuts("create", args)
	if err != nil {
		return nil, err
	}
	return Create{Shortcuts: list}, nil
}

func decodeUpdate(args []string) (Request, error) {
	list, err := decodeShortcuts("update", args)
	if err != nil {
		return nil, err
	}
	return Update{Shortcuts: list}, nil
}

// decodeShortcuts accepts one JSON object or array per argument.
func decodeShortcuts(action string, args []string) ([]shortcut.Shortcut, error) {
	if len(args) == 0 {
		return nil, missingArg(action, "at least one shortcut JSON argument")
	}

	var list []shortcut.Shortcut
	for _, arg := range args {
		raw := bytes.TrimSpace([]byte(arg))
		if len(raw) > 0 && raw[0] == '[' {
			var many []shortcut.Shortcut
			if err := json.Unmarshal(raw, &many); err != nil {
				return nil, badPayload(action, arg, err)
			}
			list = append(list, many...)
			continue
		}
		var one shortcut.Shortcut
		if err := json.Unmarshal(raw, &one); err != nil {
			return nil, badPayload(action, arg, err)
		}
		list = append(list, one)
	}
	return list, nil
}

func badPayload(action, arg string, err error) *ArgError {
	return &ArgError{Code: ErrCodeBadPayload, Action: action, Message: "malformed shortcut JSON", Arg: arg, Err: err}
}

func decodeDelete(args []string) (Request, error) {
	if len(args) == 0 {
		return nil, missingArg("delete", "at least one id")
	}
	ids := make([]shortcut.ID, 0, len(args))
	for _, arg := range args {
		id, err := shortcut.ParseID(arg)
		if err != nil {
			return nil, badID("delete", arg, err)
		}
		ids = append(ids, id)
	}
	return Delete{IDs: ids}, nil
}

func decodeImport(args []string) (Request, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, missingArg("import", "a path")
	}
	return Import{Path: args[0]}, nil
}

func decodeExport(args []string) (Request, error) {
	if len(args) == 0 || strings.TrimSpace(args[0]) == "" {
		return nil, missingArg("export", "a path")
	}
	return Export{Path: args[0]}, nil
}

func decodeExecute(args []string) (Request, error) {
	if len(args) == 0 {
		return nil, missingArg("execute", "an id")
	}
	id, err := shortcut.ParseID(args[0])
	if err != nil {
		return nil, badID("execute", args[0], err)
	}
	return Execute{ID: id}, nil
}

func decodeReload(args []string) (Request, error) {
	if len(args) == 0 {
		return Reload{}, nil
	}
	return Reload{Path: strings.TrimSpace(args[0])}, nil
}

func decodeSort(args []string) (Request, error) {
	if len(args) == 0 {
		return nil, missingArg("sort", "a column")
	}
	req := Sort{Column: store.ParseColumn(args[0]), Ascending: true}
	if len(args) > 1 {
		asc, err := store.ParseDirection(args[1])
		if err != nil {
			return nil, &ArgError{Code: ErrCodeBadValue, Action: "sort", Message: "bad direction", Arg: args[1], Err: err}
		}
		req.Ascending = asc
	}
	return req, nil
}

func decodeHistory(args []string) (Request, error) {
	if len(args) == 0 {
		return History{Limit: DefaultHistoryLimit}, nil
	}
	n, err := strconv.Atoi(strings.TrimSpace(args[0]))
	if err != nil || n <= 0 {
		return nil, &ArgError{Code: ErrCodeBadValue, Action: "history", Message: "limit must be a positive integer", Arg: args[0], Err: err}
	}
	return History{Limit: n}, nil
}

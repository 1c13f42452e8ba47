// Package fuzztests houses Go fuzz harnesses that exercise the parsing
// pipeline (source -> lexer -> parser -> directive attachment). Its goal is
// to smoke test robustness and guard against panics or hangs on arbitrary
// inputs.
//
// Назначение: запускать fuzz-обработчики, которые загружают байты в FileSet и
// прогоняют их через лексер, парсер и привязку директив.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests

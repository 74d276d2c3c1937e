package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Лексические
	LexInfo                     Code = 1000
	LexUnknownChar              Code = 1001
	LexUnterminatedString       Code = 1002
	LexUnterminatedBlockComment Code = 1003
	LexBadNumber                Code = 1004
	LexTokenTooLong             Code = 1005
	LexUnterminatedChar         Code = 1006

	// Парсерные
	SynInfo                 Code = 2000
	SynUnexpectedToken      Code = 2001
	SynUnclosedDelimiter    Code = 2002
	SynExpectSemicolon      Code = 2003
	SynExpectIdentifier     Code = 2004
	SynExpectType           Code = 2005
	SynExpectItem           Code = 2006
	SynExpectBody           Code = 2007
	SynEmptyUseGroup        Code = 2008
	SynExpectIdentAfterAs   Code = 2009
	SynVisibilityNotAllowed Code = 2010

	// Name resolution
	ResInfo            Code = 3000
	ResDuplicateSymbol Code = 3001
	ResMalformedDecl   Code = 3002
	ResModuleNotFound  Code = 3003
	ResModuleReused    Code = 3004
	ResUnresolvedPath  Code = 3101
	ResAmbiguousPath   Code = 3102

	// I/O
	IOLoadFileError Code = 4001

	// Project
	ProjInfo            Code = 5000
	ProjManifestInvalid Code = 5001
	ProjRootMissing     Code = 5002

	// Observability
	ObsInfo    Code = 6000
	ObsTimings Code = 6001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:                 "Unknown error",
		LexInfo:                     "Lexical information",
		LexUnknownChar:              "Unknown character",
		LexUnterminatedString:       "Unterminated string",
		LexUnterminatedBlockComment: "Unterminated block comment",
		LexBadNumber:                "Bad number",
		LexTokenTooLong:             "Token too long",
		LexUnterminatedChar:         "Unterminated character literal",
		SynInfo:                     "Syntax information",
		SynUnexpectedToken:          "Unexpected token",
		SynUnclosedDelimiter:        "Unclosed delimiter",
		SynExpectSemicolon:          "Expected semicolon",
		SynExpectIdentifier:         "Expected identifier",
		SynExpectType:               "Expected type",
		SynExpectItem:               "Expected item",
		SynExpectBody:               "Expected body",
		SynEmptyUseGroup:            "Empty use group",
		SynExpectIdentAfterAs:       "Expected identifier after 'as'",
		SynVisibilityNotAllowed:     "Visibility modifier not allowed here",
		ResInfo:                     "Resolution information",
		ResDuplicateSymbol:          "Duplicate symbol",
		ResMalformedDecl:            "Malformed declaration",
		ResModuleNotFound:           "Module not found",
		ResModuleReused:             "Module file declared more than once",
		ResUnresolvedPath:           "Unresolved path",
		ResAmbiguousPath:            "Ambiguous path",
		IOLoadFileError:             "I/O load file error",
		ProjInfo:                    "Project information",
		ProjManifestInvalid:         "Invalid manifest",
		ProjRootMissing:             "Missing root module",
		ObsInfo:                     "Observability information",
		ObsTimings:                  "Pipeline timings",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("RES%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("OBS%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[UnknownCode]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

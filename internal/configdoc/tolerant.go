package configdoc

import (
	"bytes"
	"errors"
)

const (
	quoteCharacterConstant          = '"'
	escapeCharacterConstant         = '\\'
	slashCharacterConstant          = '/'
	asteriskCharacterConstant       = '*'
	newlineCharacterConstant        = '\n'
	commaCharacterConstant          = ','
	closingBraceCharacterConstant   = '}'
	closingBracketCharacterConstant = ']'
	spaceCharacterConstant          = ' '
)

var byteOrderMarkPrefix = []byte{0xEF, 0xBB, 0xBF}

// ErrUnterminatedBlockComment indicates a "/*" without a matching "*/".
var ErrUnterminatedBlockComment = errors.New("block comment is not terminated")

// NormalizeTolerantContent removes a leading byte order mark, line comments,
// block comments, and trailing commas outside of string literals. Line
// structure is kept so that the output stays readable in diagnostics.
func NormalizeTolerantContent(content []byte) ([]byte, error) {
	withoutMark := bytes.TrimPrefix(content, byteOrderMarkPrefix)
	withoutComments, commentError := stripComments(withoutMark)
	if commentError != nil {
		return nil, commentError
	}
	return stripTrailingCommas(withoutComments), nil
}

func stripComments(content []byte) ([]byte, error) {
	normalized := make([]byte, 0, len(content))
	insideString := false
	escapeActive := false

	for index := 0; index < len(content); index++ {
		character := content[index]

		if insideString {
			normalized = append(normalized, character)
			switch {
			case escapeActive:
				escapeActive = false
			case character == escapeCharacterConstant:
				escapeActive = true
			case character == quoteCharacterConstant:
				insideString = false
			}
			continue
		}

		if character == quoteCharacterConstant {
			insideString = true
			normalized = append(normalized, character)
			continue
		}

		if character == slashCharacterConstant && index+1 < len(content) {
			switch content[index+1] {
			case slashCharacterConstant:
				for index < len(content) && content[index] != newlineCharacterConstant {
					index++
				}
				if index < len(content) {
					normalized = append(normalized, newlineCharacterConstant)
				}
				continue
			case asteriskCharacterConstant:
				closingOffset := bytes.Index(content[index+2:], []byte{asteriskCharacterConstant, slashCharacterConstant})
				if closingOffset < 0 {
					return nil, ErrUnterminatedBlockComment
				}
				commentBody := content[index+2 : index+2+closingOffset]
				normalized = append(normalized, spaceCharacterConstant)
				for newlineCount := bytes.Count(commentBody, []byte{newlineCharacterConstant}); newlineCount > 0; newlineCount-- {
					normalized = append(normalized, newlineCharacterConstant)
				}
				index += 2 + closingOffset + 1
				continue
			}
		}

		normalized = append(normalized, character)
	}

	return normalized, nil
}

func stripTrailingCommas(content []byte) []byte {
	normalized := make([]byte, 0, len(content))
	insideString := false
	escapeActive := false

	for index := 0; index < len(content); index++ {
		character := content[index]

		if insideString {
			normalized = append(normalized, character)
			switch {
			case escapeActive:
				escapeActive = false
			case character == escapeCharacterConstant:
				escapeActive = true
			case character == quoteCharacterConstant:
				insideString = false
			}
			continue
		}

		if character == quoteCharacterConstant {
			insideString = true
			normalized = append(normalized, character)
			continue
		}

		if character == commaCharacterConstant && closesContainer(content[index+1:]) {
			continue
		}

		normalized = append(normalized, character)
	}

	return normalized
}

func closesContainer(remainder []byte) bool {
	trimmed := bytes.TrimLeft(remainder, " \t\r\n")
	if len(trimmed) == 0 {
		return false
	}
	return trimmed[0] == closingBraceCharacterConstant || trimmed[0] == closingBracketCharacterConstant
}

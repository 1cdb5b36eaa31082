package grammar

// ParseCue tokenizes src and parses it as a single named cue. Tokens after
// the closing "CUE END" are an error.
func ParseCue(src string, opts ...Option) (*Cue, error) {
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	return ParseCueTokens(tokens, opts...)
}

// ParseCueTokens parses tokens as a single named cue, like ParseCue.
func ParseCueTokens(tokens []Token, opts ...Option) (*Cue, error) {
	p := NewCueParser(tokens, opts...)
	cue, err := p.Parse(false)
	if err != nil {
		return nil, err
	}
	p.skipNewlines()
	if tok, ok := p.peek(); ok {
		return nil, p.unexpected("end of input", tok)
	}
	return cue, nil
}

// ParseSetting tokenizes src and parses it as a setting.
func ParseSetting(src string, opts ...Option) (*Setting, error) {
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	return NewSettingParser(tokens, opts...).Parse()
}

// ParseShow tokenizes src and parses it as a show script.
func ParseShow(src string, opts ...Option) (*Script, error) {
	tokens, err := Tokenize(src, opts...)
	if err != nil {
		return nil, err
	}
	return NewShowParser(tokens, opts...).Parse()
}

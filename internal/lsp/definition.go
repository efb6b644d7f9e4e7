package lsp

import (
	"encoding/json"
	"os"

	"mojomls/internal/token"
)

func (s *Server) handleDefinition(msg *rpcMessage) error {
	var params definitionParams
	if len(msg.Params) > 0 {
		if err := json.Unmarshal(msg.Params, &params); err != nil {
			return s.sendError(msg.ID, -32602, "invalid params")
		}
	}
	uri := canonicalURI(params.TextDocument.URI)
	s.mu.Lock()
	ws := s.ws
	doc := s.docs[uri]
	var text string
	if doc != nil {
		text = doc.text
	}
	s.mu.Unlock()
	if ws == nil || uri == "" {
		return s.sendResponse(msg.ID, []location{})
	}
	path := uriToPath(uri)
	if doc == nil {
		data, err := os.ReadFile(path)
		if err != nil {
			return s.sendResponse(msg.ID, []location{})
		}
		text = string(data)
	}

	offset := safeUint32(offsetForPosition(text, params.Position))
	tokens := lexDocument(path, text)
	i, ok := tokenAtOffset(tokens, offset)
	if !ok || tokens[i].Kind != token.Ident {
		return s.sendResponse(msg.ID, []location{})
	}
	ident := identifierAt(tokens, i)

	// The debounced diagnostics run may not have seen the latest edit yet;
	// resolve against the text the request was issued for.
	ws.Update(path, []byte(text))
	sym, ok := ws.FindDefinition(path, ident)
	if !ok {
		return s.sendResponse(msg.ID, []location{})
	}
	defFile := ws.FileOf(sym.File)
	if defFile == nil {
		return s.sendResponse(msg.ID, []location{})
	}
	loc := location{
		URI:   pathToURI(defFile.Path),
		Range: rangeForSpan(defFile, sym.Span),
	}
	return s.sendResponse(msg.ID, []location{loc})
}

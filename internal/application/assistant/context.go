package assistant

import (
	"fmt"
	"strings"

	"educa-tennis-api/internal/domain/entity"
)

const pageSeparator = "\n\n---\n\n"

// BuildContext 把检索到的教材页拼接为生成上下文。
// 训练课分片加上时间标头，概念性分片原样透传，分片之间用分隔线隔开。
func BuildContext(pages []*entity.ProgramPage) string {
	blocks := make([]string, 0, len(pages))
	for _, p := range pages {
		if p == nil {
			continue
		}
		content := strings.TrimSpace(p.Content)
		if content == "" {
			continue
		}
		if p.SectionType == entity.SectionSession {
			header := fmt.Sprintf("[TRIMESTRE %d · SEMANA %d · SESIÓN %d]",
				p.Trimester, p.Week, p.Session)
			blocks = append(blocks, header+"\n"+content)
			continue
		}
		blocks = append(blocks, content)
	}
	return strings.Join(blocks, pageSeparator)
}

package service

import (
	"context"
	"encoding/json"
	"fmt"
)

const chatPromptTemplate = `Bạn là chuyên gia tư vấn tài chính cá nhân thông minh. Nhiệm vụ của bạn là phân tích tình hình tài chính của người dùng và đưa ra lời khuyên hữu ích.

Dữ liệu tài chính hiện tại của người dùng:
%s

Hướng dẫn:
- Trả lời bằng tiếng Việt
- Phân tích chi tiêu, thu nhập một cách rõ ràng
- Đưa ra lời khuyên thiết thực về tiết kiệm và đầu tư
- Sử dụng số liệu cụ thể từ dữ liệu được cung cấp
- Giữ câu trả lời ngắn gọn, dễ hiểu
- Format bằng markdown khi cần thiết`

// ChatSystemPrompt builds the assistant's system prompt with the user's
// current financial summary embedded.
func (s *Service) ChatSystemPrompt(ctx context.Context, userID int64) (string, error) {
	summary, err := s.Summary(ctx, userID)
	if err != nil {
		return "", err
	}
	data, err := json.MarshalIndent(summary, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to encode financial summary: %w", err)
	}
	return fmt.Sprintf(chatPromptTemplate, data), nil
}

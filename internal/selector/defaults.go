package selector

// DefaultTypes carries the built-in project-type catalog used when no
// tools/project-types.yaml override exists.
func DefaultTypes() []ProjectType {
	return []ProjectType{
		{
			Name:        "SaaS Application",
			Description: "B2B/B2C Software as a Service",
			Essential: []string{
				"01-foundations/typescript-standards",
				"01-foundations/python-standards",
				"02-frontend/nextjs-patterns",
				"03-backend-api/nodejs-api",
				"04-database/prisma-guide",
				"10-authentication-authorization/jwt-authentication",
				"18-project-management/agile-scrum",
				"19-seo-optimization/technical-seo",
				"21-documentation/technical-writing",
			},
			Important: []string{
				"11-billing-subscription/stripe-integration",
				"11-billing-subscription/usage-metering",
				"12-compliance-governance/pdpa-compliance",
				"14-monitoring-observability/prometheus-metrics",
				"15-devops-infrastructure/docker-patterns",
				"28-marketing-integration/email-marketing",
				"29-customer-support/helpdesk-integration",
			},
			Optional: []string{
				"17-domain-specific/multi-tenancy",
				"20-ai-integration/chatbot-integration",
				"34-real-time-features/websocket-patterns",
			},
		},
		{
			Name:        "E-commerce Platform",
			Description: "Online store with payments and inventory",
			Essential: []string{
				"01-foundations/typescript-standards",
				"02-frontend/nextjs-patterns",
				"03-backend-api/nodejs-api",
				"04-database/prisma-guide",
				"10-authentication-authorization/jwt-authentication",
				"11-billing-subscription/stripe-integration",
				"13-file-storage/s3-integration",
				"30-ecommerce/shopping-cart",
				"30-ecommerce/payment-gateways",
				"30-ecommerce/order-management",
			},
			Important: []string{
				"12-compliance-governance/pdpa-compliance",
				"15-devops-infrastructure/kubernetes-deployment",
				"19-seo-optimization/nextjs-seo",
				"28-marketing-integration/email-marketing",
				"30-ecommerce/inventory-management",
				"30-ecommerce/shipping-integration",
			},
			Optional: []string{
				"14-monitoring-observability/grafana-dashboards",
				"29-customer-support/live-chat",
			},
		},
		{
			Name:        "Mobile Application",
			Description: "iOS/Android mobile app",
			Essential: []string{
				"01-foundations/typescript-standards",
				"03-backend-api/fastapi-patterns",
				"04-database/mongodb-patterns",
				"10-authentication-authorization/jwt-authentication",
				"31-mobile-development/react-native-patterns",
				"31-mobile-development/push-notifications",
			},
			Important: []string{
				"13-file-storage/s3-integration",
				"14-monitoring-observability/error-tracking",
				"15-devops-infrastructure/ci-cd-github-actions",
				"31-mobile-development/offline-mode",
				"31-mobile-development/deep-linking",
			},
			Optional: []string{
				"11-billing-subscription/stripe-integration",
				"20-ai-integration/chatbot-integration",
				"34-real-time-features/presence-detection",
			},
		},
		{
			Name:        "AI/ML Product",
			Description: "Machine learning powered application",
			Essential: []string{
				"01-foundations/python-standards",
				"03-backend-api/fastapi-patterns",
				"04-database/vector-database",
				"05-ai-ml-core/pytorch-deployment",
				"06-ai-ml-production/llm-integration",
				"06-ai-ml-production/rag-implementation",
			},
			Important: []string{
				"05-ai-ml-core/model-training",
				"05-ai-ml-core/data-preprocessing",
				"13-file-storage/s3-integration",
				"14-monitoring-observability/prometheus-metrics",
				"15-devops-infrastructure/kubernetes-deployment",
				"20-ai-integration/ai-agents",
				"39-data-science-ml/ml-serving",
			},
			Optional: []string{
				"07-document-processing/ocr-paddleocr",
				"19-seo-optimization/technical-seo",
				"21-documentation/api-documentation",
			},
		},
		{
			Name:        "IoT Platform",
			Description: "Internet of Things device management",
			Essential: []string{
				"01-foundations/python-standards",
				"03-backend-api/nodejs-api",
				"04-database/timescaledb",
				"08-messaging-queue/mqtt-integration",
				"36-iot-integration/iot-protocols",
				"36-iot-integration/device-management",
			},
			Important: []string{
				"14-monitoring-observability/grafana-dashboards",
				"15-devops-infrastructure/docker-patterns",
				"34-real-time-features/real-time-dashboard",
				"36-iot-integration/sensor-data-processing",
				"36-iot-integration/iot-security",
			},
			Optional: []string{
				"06-ai-ml-production/llm-integration",
				"36-iot-integration/edge-computing",
				"39-data-science-ml/data-pipeline",
			},
		},
		{
			Name:        "Gaming Platform",
			Description: "Multiplayer gaming or game platform",
			Essential: []string{
				"01-foundations/typescript-standards",
				"03-backend-api/nodejs-api",
				"04-database/redis-caching",
				"08-messaging-queue/redis-queue",
				"34-real-time-features/websocket-patterns",
				"38-gaming-features/leaderboards",
				"38-gaming-features/real-time-multiplayer",
			},
			Important: []string{
				"10-authentication-authorization/jwt-authentication",
				"11-billing-subscription/stripe-integration",
				"14-monitoring-observability/prometheus-metrics",
				"15-devops-infrastructure/kubernetes-deployment",
				"38-gaming-features/achievements",
				"38-gaming-features/matchmaking",
			},
			Optional: []string{
				"13-file-storage/cdn-integration",
				"37-video-streaming/live-streaming",
				"38-gaming-features/in-game-purchases",
			},
		},
		{
			Name:        "Video Platform",
			Description: "Video hosting and streaming service",
			Essential: []string{
				"01-foundations/typescript-standards",
				"03-backend-api/nodejs-api",
				"04-database/prisma-guide",
				"13-file-storage/s3-integration",
				"37-video-streaming/video-upload-processing",
				"37-video-streaming/adaptive-bitrate",
			},
			Important: []string{
				"10-authentication-authorization/jwt-authentication",
				"14-monitoring-observability/prometheus-metrics",
				"15-devops-infrastructure/kubernetes-deployment",
				"34-real-time-features/websocket-patterns",
				"37-video-streaming/video-transcoding",
				"37-video-streaming/cdn-delivery",
			},
			Optional: []string{
				"11-billing-subscription/subscription-plans",
				"20-ai-integration/ai-search",
				"37-video-streaming/live-streaming",
			},
		},
		{
			Name:        "Web3/Blockchain Application",
			Description: "Decentralized application (dApp)",
			Essential: []string{
				"01-foundations/typescript-standards",
				"02-frontend/nextjs-patterns",
				"03-backend-api/nodejs-api",
				"35-blockchain-web3/web3-integration",
				"35-blockchain-web3/wallet-connection",
				"35-blockchain-web3/smart-contracts",
			},
			Important: []string{
				"10-authentication-authorization/jwt-authentication",
				"13-file-storage/s3-integration",
				"14-monitoring-observability/error-tracking",
				"15-devops-infrastructure/docker-patterns",
				"35-blockchain-web3/blockchain-authentication",
			},
			Optional: []string{
				"11-billing-subscription/stripe-integration",
				"34-real-time-features/websocket-patterns",
				"35-blockchain-web3/nft-integration",
				"35-blockchain-web3/cryptocurrency-payment",
			},
		},
		{
			Name:        "Content Management System",
			Description: "Headless CMS or publishing platform",
			Essential: []string{
				"01-foundations/typescript-standards",
				"02-frontend/nextjs-patterns",
				"03-backend-api/nodejs-api",
				"04-database/prisma-guide",
				"33-content-management/headless-cms",
				"33-content-management/media-library",
			},
			Important: []string{
				"10-authentication-authorization/rbac-patterns",
				"13-file-storage/cdn-integration",
				"19-seo-optimization/nextjs-seo",
				"21-documentation/user-guides",
				"33-content-management/content-versioning",
			},
			Optional: []string{
				"20-ai-integration/ai-search",
				"22-ux-ui-design/design-systems",
				"34-real-time-features/collaborative-editing",
			},
		},
	}
}

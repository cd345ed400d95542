package constant

// Prompt templates for the report sections. Each asks the model for a pure
// JSON object so the pipeline can store sections as structured payloads;
// non-JSON answers are kept as raw text under a "texto" key.

const PromptContext = `Você é um analista de mercado sênior. Contexto da análise:
Segmento: %s
Produto/Serviço: %s
Público-alvo: %s
Objetivos: %s
Contexto adicional: %s

Pesquisa de mercado coletada:
%s
`

const PromptAvatar = `Com base no contexto acima, crie um avatar ultra-detalhado do cliente ideal.
Responda APENAS com um objeto JSON com as chaves: "nome_ficticio", "perfil_demografico",
"dores_principais" (lista), "desejos_ocultos" (lista), "objecoes_comuns" (lista), "dia_perfeito".`

const PromptDrivers = `Gere drivers mentais customizados para este mercado.
Responda APENAS com um objeto JSON com a chave "drivers": lista de objetos com
"nome", "gatilho" e "aplicacao".`

const PromptProvas = `Desenvolva provas visuais instantâneas (demonstrações físicas de conceitos).
Responda APENAS com um objeto JSON com a chave "provas": lista de objetos com
"conceito", "demonstracao" e "materiais" (lista).`

const PromptAntiObjecao = `Construa um sistema anti-objeção para as objeções mais prováveis.
Responda APENAS com um objeto JSON com a chave "objecoes": lista de objetos com
"objecao", "raiz_emocional" e "contorno".`

const PromptPrePitch = `Arquitete um pré-pitch: a sequência psicológica que antecede a oferta.
Responda APENAS com um objeto JSON com as chaves "fases" (lista de objetos com
"fase", "objetivo", "roteiro") e "duracao_total".`

const PromptConcorrencia = `Mapeie a concorrência e o posicionamento neste segmento.
Responda APENAS com um objeto JSON com as chaves "concorrentes" (lista de objetos
com "nome", "forcas", "fraquezas") e "posicionamento_recomendado".`

const PromptPalavrasChave = `Liste palavras-chave estratégicas para este mercado.
Responda APENAS com um objeto JSON com as chaves "primarias" (lista),
"secundarias" (lista) e "cauda_longa" (lista).`

const PromptFunil = `Desenhe o funil de vendas recomendado para este produto.
Responda APENAS com um objeto JSON com a chave "etapas": lista de objetos com
"etapa", "objetivo" e "metricas_chave" (lista).`

const PromptMetricas = `Calcule métricas e projeções plausíveis para este negócio.
Responda APENAS com um objeto JSON com as chaves "projecao_conservadora",
"projecao_realista", "projecao_otimista" (objetos com "faturamento_mensal",
"clientes_mes") e "premissas" (lista).`

const PromptPredicoes = `Preveja a evolução deste mercado nos próximos 36 meses.
Responda APENAS com um objeto JSON com as chaves "tendencias" (lista),
"oportunidades_emergentes" (lista) e "ameacas" (lista).`

const PromptInsights = `Consolide os achados em insights exclusivos e acionáveis.
Responda APENAS com um objeto JSON com a chave "insights": lista de strings.`
